package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the payload shape of a published event.
type EventType string

const (
	PostCreated EventType = "snippet.post.created"
)

// BaseEvent carries the envelope fields every event shares.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "snippet-bot",
		Version:   "1.0",
	}
}

// PostCreatedEvent announces a freshly persisted snippet post.
type PostCreatedEvent struct {
	BaseEvent
	PostID   string `json:"post_id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Prompt   string `json:"prompt"`
	HasImage bool   `json:"has_image"`
}

func NewPostCreatedEvent(postID, title, slug, prompt string, hasImage bool) PostCreatedEvent {
	return PostCreatedEvent{
		BaseEvent: NewBaseEvent(PostCreated),
		PostID:    postID,
		Title:     title,
		Slug:      slug,
		Prompt:    prompt,
		HasImage:  hasImage,
	}
}
