package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Pin struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Description string
	Image       string `gorm:"not null"`
	SourceURL   string
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	BoardID     *uuid.UUID `gorm:"type:uuid;index"`
	Tags        string     `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Board *Board `gorm:"foreignKey:BoardID;constraint:OnDelete:SET NULL"`
}

// TagList splits the comma-delimited tags; blank tags yield an empty list.
func (p Pin) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

func (p Pin) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

func (p Pin) String() string {
	return p.Title
}
