package repository

import (
	"context"
	"errors"

	"pinboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetBySlug(ctx context.Context, slug string) (*model.Board, error)
	GetOwnedBySlug(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Board, error)
	GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Board, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublic(ctx context.Context) ([]model.Board, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, includePrivate bool) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetBySlug(ctx context.Context, slug string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Preload("Owner").Where("slug = ?", slug).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// GetOwnedBySlug matches on slug and owner together, so a foreign board looks
// exactly like a missing one.
func (r *BoardRepository) GetOwnedBySlug(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Where("slug = ? AND owner_id = ?", slug, ownerID).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *BoardRepository) ListPublic(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("is_private = ?", false).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, includePrivate bool) ([]model.Board, error) {
	var boards []model.Board
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}
	err := query.Order("created_at DESC").Find(&boards).Error
	return boards, err
}

// Update saves name, description and privacy. The slug column is left alone.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	result := r.db.WithContext(ctx).Model(board).Updates(map[string]interface{}{
		"name":        board.Name,
		"description": board.Description,
		"is_private":  board.IsPrivate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the board; its pins survive with board_id set to NULL.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
