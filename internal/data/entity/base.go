package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by catalog and booking rows, which use serial ids.
type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// BaseUUID is embedded by identity rows.
type BaseUUID struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
