package handler_test

import (
	"context"
	"mime/multipart"
	"time"

	"pinboard/internal/model"
	"pinboard/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Моки репозиториев

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	return m.Called(ctx, board).Error(0)
}

func (m *MockBoardRepository) GetBySlug(ctx context.Context, slug string) (*model.Board, error) {
	args := m.Called(ctx, slug)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardRepository) GetOwnedBySlug(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, slug, ownerID)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardRepository) GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id, ownerID)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoardRepository) ListPublic(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, includePrivate bool) ([]model.Board, error) {
	args := m.Called(ctx, ownerID, includePrivate)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	return m.Called(ctx, board).Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPinRepository struct {
	mock.Mock
}

func (m *MockPinRepository) Create(ctx context.Context, pin *model.Pin) error {
	return m.Called(ctx, pin).Error(0)
}

func (m *MockPinRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pin, error) {
	args := m.Called(ctx, id)
	pin, _ := args.Get(0).(*model.Pin)
	return pin, args.Error(1)
}

func (m *MockPinRepository) GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Pin, error) {
	args := m.Called(ctx, id, ownerID)
	pin, _ := args.Get(0).(*model.Pin)
	return pin, args.Error(1)
}

func (m *MockPinRepository) Search(ctx context.Context, query string) ([]model.Pin, error) {
	args := m.Called(ctx, query)
	pins, _ := args.Get(0).([]model.Pin)
	return pins, args.Error(1)
}

func (m *MockPinRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Pin, error) {
	args := m.Called(ctx, boardID)
	pins, _ := args.Get(0).([]model.Pin)
	return pins, args.Error(1)
}

func (m *MockPinRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Pin, error) {
	args := m.Called(ctx, ownerID)
	pins, _ := args.Get(0).([]model.Pin)
	return pins, args.Error(1)
}

func (m *MockPinRepository) CountByBoards(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, boardIDs)
	counts, _ := args.Get(0).(map[uuid.UUID]int64)
	return counts, args.Error(1)
}

func (m *MockPinRepository) Update(ctx context.Context, pin *model.Pin) error {
	return m.Called(ctx, pin).Error(0)
}

func (m *MockPinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByPin(ctx context.Context, pinID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, pinID)
	comments, _ := args.Get(0).([]model.Comment)
	return comments, args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, pinID, userID uuid.UUID) (bool, int64, error) {
	args := m.Called(ctx, pinID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) Count(ctx context.Context, pinID uuid.UUID) (int64, error) {
	args := m.Called(ctx, pinID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) IsLiked(ctx context.Context, pinID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, pinID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CountByPins(ctx context.Context, pinIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, pinIDs)
	counts, _ := args.Get(0).(map[uuid.UUID]int64)
	return counts, args.Error(1)
}

func (m *MockLikeRepository) LikedAmong(ctx context.Context, userID uuid.UUID, pinIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, pinIDs)
	liked, _ := args.Get(0).(map[uuid.UUID]bool)
	return liked, args.Error(1)
}

// Моки хранилища

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Open(ctx context.Context, name string) (*storage.Object, error) {
	args := m.Called(ctx, name)
	obj, _ := args.Get(0).(*storage.Object)
	return obj, args.Error(1)
}

func (m *MockImageStore) Remove(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MockDiscarder struct {
	mock.Mock
}

func (m *MockDiscarder) Discard(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return m.Called(ctx, tokenID, until).Error(0)
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
