package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunStatus describes how a pipeline invocation ended.
type RunStatus string

const (
	// RunSucceeded: a post document was persisted.
	RunSucceeded RunStatus = "succeeded"
	// RunAborted: an Abort-policy step failed; nothing was persisted.
	RunAborted RunStatus = "aborted"
)

// Run records one pipeline invocation.
// Collection: runs
type Run struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartedAt     time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt    time.Time          `bson:"finished_at" json:"finished_at"`
	Prompt        string             `bson:"prompt" json:"prompt"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	Status        RunStatus          `bson:"status" json:"status"`
	PostID        string             `bson:"post_id,omitempty" json:"post_id,omitempty"`
	ImageDegraded bool               `bson:"image_degraded" json:"image_degraded"`
	ErrorMessage  string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
}
