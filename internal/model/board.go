package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Board группирует пины пользователя
type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	IsPrivate   bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Slug        string `gorm:"size:120;uniqueIndex;not null"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// BoardSlug builds the slug a board named name gets when created by ownerID.
func BoardSlug(name string, ownerID uuid.UUID) string {
	return slug.Make(name) + "-" + ownerID.String()
}

// EnsureSlug fills the slug once; an existing slug is never touched.
func (b *Board) EnsureSlug() {
	if b.Slug == "" {
		b.Slug = BoardSlug(b.Name, b.OwnerID)
	}
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	b.EnsureSlug()
	return nil
}

func (b Board) String() string {
	return b.Name
}
