package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// PricingRepository handles per-subject tuition rates.
type PricingRepository struct {
	db *sqlx.DB
}

// NewPricingRepository constructs the repository.
func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// ListAll returns every pricing record.
func (r *PricingRepository) ListAll(ctx context.Context) ([]models.PricingRecord, error) {
	query := `SELECT student_id, subject, price_per_class, currency, updated_at
FROM student_subject_tuition
ORDER BY student_id, subject`
	records := []models.PricingRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list pricing: %w", err)
	}
	return records, nil
}

// Upsert writes the rate and currency for a (student, subject) pair.
func (r *PricingRepository) Upsert(ctx context.Context, studentID int64, subject string, pricePerClass float64, currency models.Currency) (*models.PricingRecord, error) {
	query := `INSERT INTO student_subject_tuition (student_id, subject, price_per_class, currency, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (student_id, subject)
DO UPDATE SET price_per_class = EXCLUDED.price_per_class, currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at
RETURNING student_id, subject, price_per_class, currency, updated_at`
	var stored models.PricingRecord
	if err := r.db.GetContext(ctx, &stored, query, studentID, subject, pricePerClass, currency, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert pricing: %w", err)
	}
	return &stored, nil
}

// InsertIfAbsent creates a zero-priced PHP record for the pair unless one
// already exists. Returns (nil, nil) when the pair was already present: the
// add-subject operation is a no-op on conflict, not an error.
func (r *PricingRepository) InsertIfAbsent(ctx context.Context, studentID int64, subject string) (*models.PricingRecord, error) {
	query := `INSERT INTO student_subject_tuition (student_id, subject, price_per_class, currency, updated_at)
VALUES ($1, $2, 0, $3, $4)
ON CONFLICT (student_id, subject) DO NOTHING
RETURNING student_id, subject, price_per_class, currency, updated_at`
	var stored models.PricingRecord
	err := r.db.GetContext(ctx, &stored, query, studentID, subject, models.CurrencyPHP, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert pricing: %w", err)
	}
	return &stored, nil
}

// Delete removes the pair's pricing record, returning it; sql.ErrNoRows when
// absent. Payment cascade is the caller's concern.
func (r *PricingRepository) Delete(ctx context.Context, studentID int64, subject string) (*models.PricingRecord, error) {
	query := `DELETE FROM student_subject_tuition
WHERE student_id = $1 AND subject = $2
RETURNING student_id, subject, price_per_class, currency, updated_at`
	var removed models.PricingRecord
	if err := r.db.GetContext(ctx, &removed, query, studentID, subject); err != nil {
		return nil, err
	}
	return &removed, nil
}
