package notify

import (
	"time"

	"github.com/stashbox-hq/stashbox-transfer/internal/domain"
)

// Operations announced to sinks.
const (
	OperationUpload = "upload"
	OperationDelete = "delete"
)

// Event represents a completed transfer announced downstream.
type Event struct {
	Operation   string      `json:"operation"`
	ProfileID   string      `json:"profile_id"`
	File        domain.File `json:"file"`
	CompletedAt time.Time   `json:"completed_at"`
}

// NewEvent constructs an Event for the given operation + file.
func NewEvent(operation, profileID string, file domain.File) Event {
	return Event{
		Operation:   operation,
		ProfileID:   profileID,
		File:        file,
		CompletedAt: time.Now().UTC(),
	}
}
