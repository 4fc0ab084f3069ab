package domain

import (
	"time"

	"github.com/google/uuid"
)

type ImageCategory string

const (
	CategoryHomeAnnouncement ImageCategory = "home_announcement"
	CategoryHomeMemories     ImageCategory = "home_memories"
	CategoryMemoriesPage     ImageCategory = "memories_page"
)

func ImageCategories() []ImageCategory {
	return []ImageCategory{CategoryHomeAnnouncement, CategoryHomeMemories, CategoryMemoriesPage}
}

func (c ImageCategory) IsValid() bool {
	for _, known := range ImageCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Image is a content-managed asset served from the external image store.
// PublicID is the external store identifier used for removal.
type Image struct {
	ID       uuid.UUID     `db:"id" json:"id"`
	URL      string        `db:"url" json:"url"`
	PublicID string        `db:"public_id" json:"-"`
	Category ImageCategory `db:"category" json:"category"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
