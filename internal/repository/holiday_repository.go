package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// HolidayRepository handles no-class dates.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs the repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

const holidayColumns = `id, TO_CHAR(date, 'YYYY-MM-DD') AS date, name, created_at`

// List returns every holiday, oldest first.
func (r *HolidayRepository) List(ctx context.Context) ([]models.Holiday, error) {
	query := fmt.Sprintf(`SELECT %s FROM holidays ORDER BY date`, holidayColumns)
	holidays := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}

// ListByRange returns the holidays falling in [from, to].
func (r *HolidayRepository) ListByRange(ctx context.Context, from, to string) ([]models.Holiday, error) {
	query := fmt.Sprintf(`SELECT %s FROM holidays
WHERE date >= $1 AND date <= $2
ORDER BY date`, holidayColumns)
	holidays := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query, from, to); err != nil {
		return nil, fmt.Errorf("list holidays by range: %w", err)
	}
	return holidays, nil
}

// Upsert stores a holiday; re-adding a date just renames it.
func (r *HolidayRepository) Upsert(ctx context.Context, date, name string) (*models.Holiday, error) {
	query := fmt.Sprintf(`INSERT INTO holidays (id, date, name, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
RETURNING %s`, holidayColumns)
	var stored models.Holiday
	if err := r.db.GetContext(ctx, &stored, query, uuid.NewString(), date, name, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert holiday: %w", err)
	}
	return &stored, nil
}

// Delete removes a holiday by id; sql.ErrNoRows when unknown.
func (r *HolidayRepository) Delete(ctx context.Context, id string) (*models.Holiday, error) {
	query := fmt.Sprintf(`DELETE FROM holidays WHERE id = $1 RETURNING %s`, holidayColumns)
	var removed models.Holiday
	if err := r.db.GetContext(ctx, &removed, query, id); err != nil {
		return nil, err
	}
	return &removed, nil
}
