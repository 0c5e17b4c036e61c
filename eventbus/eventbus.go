// Package eventbus publishes post lifecycle events to Kafka. Publishing
// is best-effort from the pipeline's point of view: a failed publish is
// logged and never fails the run.
package eventbus

import "context"

// Publisher is the outbound event surface the pipeline depends on.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close()
}

// NoopPublisher is used when the event bus is disabled by configuration.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, key string, event any) error { return nil }
func (NoopPublisher) Close()                                                   {}
