package model

import (
	"time"

	"github.com/google/uuid"
)

// PinLike is one membership in a pin's liked-by set.
type PinLike struct {
	PinID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Pin  Pin  `gorm:"foreignKey:PinID;constraint:OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (PinLike) TableName() string { return "pin_likes" }
