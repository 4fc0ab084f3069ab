package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office principal. Rows are created only through the
// setup-key gated seed endpoint, never by public traffic.
type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
