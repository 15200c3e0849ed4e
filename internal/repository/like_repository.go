package repository

import (
	"context"
	"errors"

	"pinboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

type LikeRepositoryInterface interface {
	Toggle(ctx context.Context, pinID, userID uuid.UUID) (liked bool, count int64, err error)
	Count(ctx context.Context, pinID uuid.UUID) (int64, error)
	IsLiked(ctx context.Context, pinID, userID uuid.UUID) (bool, error)
	CountByPins(ctx context.Context, pinIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedAmong(ctx context.Context, userID uuid.UUID, pinIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

var _ LikeRepositoryInterface = (*LikeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle flips the user's membership in the pin's liked-by set and returns the
// new state with the fresh count. The pin row is locked for the duration of the
// transaction, so concurrent toggles on one pin are applied one after another.
func (r *LikeRepository) Toggle(ctx context.Context, pinID, userID uuid.UUID) (bool, int64, error) {
	var (
		liked bool
		count int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pin model.Pin
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", pinID).
			First(&pin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPinNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&model.PinLike{}).
			Where("pin_id = ? AND user_id = ?", pinID, userID).
			Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			if err := tx.Where("pin_id = ? AND user_id = ?", pinID, userID).
				Delete(&model.PinLike{}).Error; err != nil {
				return err
			}
			liked = false
		} else {
			if err := tx.Create(&model.PinLike{PinID: pinID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&model.PinLike{}).Where("pin_id = ?", pinID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *LikeRepository) Count(ctx context.Context, pinID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PinLike{}).Where("pin_id = ?", pinID).Count(&count).Error
	return count, err
}

func (r *LikeRepository) IsLiked(ctx context.Context, pinID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PinLike{}).
		Where("pin_id = ? AND user_id = ?", pinID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *LikeRepository) CountByPins(ctx context.Context, pinIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(pinIDs))
	if len(pinIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PinID uuid.UUID
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.PinLike{}).
		Select("pin_id, COUNT(*) AS total").
		Where("pin_id IN ?", pinIDs).
		Group("pin_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PinID] = row.Total
	}
	return counts, nil
}

// LikedAmong reports which of pinIDs the user currently likes.
func (r *LikeRepository) LikedAmong(ctx context.Context, userID uuid.UUID, pinIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(pinIDs))
	if len(pinIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.PinLike{}).
		Where("user_id = ? AND pin_id IN ?", userID, pinIDs).
		Pluck("pin_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
