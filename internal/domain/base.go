package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Model is the embedded base of every persisted entity. Deletion is
// always soft: rows keep their id for history and are filtered out by
// deleted_at.
type Model struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty" db:"deleted_at"`
}
