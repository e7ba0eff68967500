package archive

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewID returns a UUID for archive entities.
func NewID() string {
	return uuid.NewString()
}

// NewJobID returns a sortable 26-char ULID for import jobs.
func NewJobID() string {
	return ulid.Make().String()
}
