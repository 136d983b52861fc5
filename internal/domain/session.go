package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the synchronization state of the edit buffer against the
// persisted document.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusUnloaded      Status = "unloaded"
	StatusClean         Status = "clean"
	StatusDirtyValid    Status = "dirty_valid"
	StatusDirtyInvalid  Status = "dirty_invalid"
	StatusCorrupt       Status = "corrupt"
)

// DefaultSlot names the single document slot the stores persist.
const DefaultSlot = "default"

// Revision is one persisted version of the document slot, as recorded by the
// SQL-backed stores.
type Revision struct {
	ID        uuid.UUID `json:"id"`
	Slot      string    `json:"slot"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
