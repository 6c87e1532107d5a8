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

// PaymentRepository handles monthly tuition payment state per
// (student, subject).
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `student_id, subject, year, month, paid, TO_CHAR(payment_date, 'YYYY-MM-DD') AS payment_date, notes`

// ListByMonth returns every payment record for a billing month.
func (r *PaymentRepository) ListByMonth(ctx context.Context, year, month int) ([]models.PaymentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM subject_tuition_payments
WHERE year = $1 AND month = $2`, paymentColumns)
	records := []models.PaymentRecord{}
	if err := r.db.SelectContext(ctx, &records, query, year, month); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return records, nil
}

// Get returns the payment record for a key, or nil when none exists yet
// (which callers treat as unpaid).
func (r *PaymentRepository) Get(ctx context.Context, studentID int64, subject string, year, month int) (*models.PaymentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM subject_tuition_payments
WHERE student_id = $1 AND subject = $2 AND year = $3 AND month = $4`, paymentColumns)
	var record models.PaymentRecord
	err := r.db.GetContext(ctx, &record, query, studentID, subject, year, month)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &record, nil
}

// Upsert writes the payment state for its key.
func (r *PaymentRepository) Upsert(ctx context.Context, record *models.PaymentRecord) (*models.PaymentRecord, error) {
	query := fmt.Sprintf(`INSERT INTO subject_tuition_payments (student_id, subject, year, month, paid, payment_date, notes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (student_id, subject, year, month)
DO UPDATE SET paid = EXCLUDED.paid, payment_date = EXCLUDED.payment_date, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
RETURNING %s`, paymentColumns)
	var stored models.PaymentRecord
	if err := r.db.GetContext(ctx, &stored, query,
		record.StudentID, record.Subject, record.Year, record.Month, record.Paid, record.PaymentDate, record.Notes, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("upsert payment: %w", err)
	}
	return &stored, nil
}

// DeleteForSubject removes every payment record for a (student, subject)
// pair, all months included. Used by the delete-subject cascade.
func (r *PaymentRepository) DeleteForSubject(ctx context.Context, studentID int64, subject string) error {
	query := `DELETE FROM subject_tuition_payments WHERE student_id = $1 AND subject = $2`
	if _, err := r.db.ExecContext(ctx, query, studentID, subject); err != nil {
		return fmt.Errorf("cascade payments: %w", err)
	}
	return nil
}
