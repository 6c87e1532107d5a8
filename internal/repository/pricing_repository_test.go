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

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

func pricingColumnsForTest() []string {
	return []string{"student_id", "subject", "price_per_class", "currency", "updated_at"}
}

func TestPricingRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPricingRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(pricingColumnsForTest()).
		AddRow(int64(7), "Math", 550.0, "PHP", now).
		AddRow(int64(7), "Science", 600.0, "KRW", now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM student_subject_tuition")).
		WillReturnRows(rows)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.CurrencyKRW, records[1].Currency)
}

func TestPricingRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPricingRepository(db)

	rows := sqlmock.NewRows(pricingColumnsForTest()).
		AddRow(int64(7), "Math", 700.0, "PHP", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (student_id, subject)")).
		WithArgs(int64(7), "Math", 700.0, "PHP", sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), 7, "Math", 700, models.CurrencyPHP)
	require.NoError(t, err)
	assert.Equal(t, 700.0, stored.PricePerClass)
}

func TestPricingRepositoryInsertIfAbsentConflict(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPricingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (student_id, subject) DO NOTHING")).
		WithArgs(int64(7), "Math", "PHP", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	stored, err := repo.InsertIfAbsent(context.Background(), 7, "Math")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestPricingRepositoryInsertIfAbsentNew(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPricingRepository(db)

	rows := sqlmock.NewRows(pricingColumnsForTest()).
		AddRow(int64(7), "Piano", 0.0, "PHP", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("DO NOTHING")).
		WithArgs(int64(7), "Piano", "PHP", sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.InsertIfAbsent(context.Background(), 7, "Piano")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 0.0, stored.PricePerClass)
	assert.Equal(t, models.CurrencyPHP, stored.Currency)
}

func TestPricingRepositoryDeleteNone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPricingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM student_subject_tuition")).
		WithArgs(int64(7), "Ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 7, "Ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
