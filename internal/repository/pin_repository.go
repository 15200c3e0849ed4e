package repository

import (
	"context"
	"errors"
	"strings"

	"pinboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PinRepository struct {
	db *gorm.DB
}

type PinRepositoryInterface interface {
	Create(ctx context.Context, pin *model.Pin) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pin, error)
	GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Pin, error)
	Search(ctx context.Context, query string) ([]model.Pin, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Pin, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Pin, error)
	CountByBoards(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, pin *model.Pin) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ PinRepositoryInterface = (*PinRepository)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewPinRepository(db *gorm.DB) *PinRepository {
	return &PinRepository{db: db}
}

func (r *PinRepository) Create(ctx context.Context, pin *model.Pin) error {
	return r.db.WithContext(ctx).Create(pin).Error
}

// GetByID loads the pin with its owner and board
func (r *PinRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pin, error) {
	var pin model.Pin
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Board").
		Where("id = ?", id).
		First(&pin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

func (r *PinRepository) GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Pin, error) {
	var pin model.Pin
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&pin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// Search returns every pin, newest first. A non-empty query keeps only pins whose
// title, description or tags contain it, ignoring case.
func (r *PinRepository) Search(ctx context.Context, query string) ([]model.Pin, error) {
	var pins []model.Pin
	tx := r.db.WithContext(ctx).Preload("Owner").Preload("Board")
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + likeEscaper.Replace(query) + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ? OR tags ILIKE ?", pattern, pattern, pattern)
	}
	err := tx.Order("created_at DESC").Find(&pins).Error
	return pins, err
}

func (r *PinRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Pin, error) {
	var pins []model.Pin
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&pins).Error
	return pins, err
}

func (r *PinRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Pin, error) {
	var pins []model.Pin
	err := r.db.WithContext(ctx).
		Preload("Board").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&pins).Error
	return pins, err
}

// CountByBoards aggregates pin counts per board. Boards without pins are absent
// from the map.
func (r *PinRepository) CountByBoards(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(boardIDs))
	if len(boardIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		BoardID uuid.UUID
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Pin{}).
		Select("board_id, COUNT(*) AS total").
		Where("board_id IN ?", boardIDs).
		Group("board_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.BoardID] = row.Total
	}
	return counts, nil
}

func (r *PinRepository) Update(ctx context.Context, pin *model.Pin) error {
	result := r.db.WithContext(ctx).Model(pin).Updates(map[string]interface{}{
		"title":       pin.Title,
		"description": pin.Description,
		"image":       pin.Image,
		"source_url":  pin.SourceURL,
		"board_id":    pin.BoardID,
		"tags":        pin.Tags,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the pin together with its comments and likes (cascade).
func (r *PinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Pin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
