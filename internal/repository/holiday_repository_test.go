package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepositoryListByRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	rows := sqlmock.NewRows([]string{"id", "date", "name", "created_at"}).
		AddRow("hol-1", "2026-08-21", "Ninoy Aquino Day", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE date >= $1 AND date <= $2")).
		WithArgs("2026-08-01", "2026-08-31").
		WillReturnRows(rows)

	holidays, err := repo.ListByRange(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "2026-08-21", holidays[0].Date)
}

func TestHolidayRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	rows := sqlmock.NewRows([]string{"id", "date", "name", "created_at"}).
		AddRow("hol-2", "2026-12-25", "Christmas", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name")).
		WithArgs(sqlmock.AnyArg(), "2026-12-25", "Christmas", sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), "2026-12-25", "Christmas")
	require.NoError(t, err)
	assert.Equal(t, "Christmas", stored.Name)
}

func TestHolidayRepositoryDeleteUnknown(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM holidays WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
