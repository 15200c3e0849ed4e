package repository_test

import (
	"context"
	"testing"

	"pinboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPinRepository_Search_EscapesQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	pinRepo := repository.NewPinRepository(gormDB)

	pattern := `%50\% sun\_set%`
	mock.ExpectQuery(`SELECT \* FROM "pins" WHERE title ILIKE \$1 OR description ILIKE \$2 OR tags ILIKE \$3 ORDER BY created_at DESC`).
		WithArgs(pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	pins, err := pinRepo.Search(context.Background(), "  50% sun_set ")

	assert.NoError(t, err)
	assert.Empty(t, pins)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPinRepository_Search_EmptyQueryReturnsAll(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	pinRepo := repository.NewPinRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "pins" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	_, err := pinRepo.Search(context.Background(), "")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPinRepository_CountByBoards(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	pinRepo := repository.NewPinRepository(gormDB)

	withPins := uuid.New()
	empty := uuid.New()

	mock.ExpectQuery(`SELECT board_id, COUNT\(\*\) AS total FROM "pins" WHERE board_id IN .* GROUP BY "board_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "total"}).AddRow(withPins.String(), 3))

	counts, err := pinRepo.CountByBoards(context.Background(), []uuid.UUID{withPins, empty})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), counts[withPins])
	assert.Equal(t, int64(0), counts[empty])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPinRepository_CountByBoards_NoBoards(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	pinRepo := repository.NewPinRepository(gormDB)

	counts, err := pinRepo.CountByBoards(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPinRepository_GetOwnedByID_NotOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	pinRepo := repository.NewPinRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "pins" WHERE id = .* AND owner_id = .* LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	pin, err := pinRepo.GetOwnedByID(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, pin)
	assert.NoError(t, mock.ExpectationsWereMet())
}
