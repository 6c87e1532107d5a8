package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// CommissionRepository handles per-pair commission rates and the monthly
// teacher payout state.
type CommissionRepository struct {
	db *sqlx.DB
}

// NewCommissionRepository constructs the repository.
func NewCommissionRepository(db *sqlx.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

// ListRates returns every (teacher, student) commission rate.
func (r *CommissionRepository) ListRates(ctx context.Context) ([]models.CommissionRecord, error) {
	query := `SELECT teacher_id, student_id, commission_per_class, currency, updated_at
FROM teacher_student_commission
ORDER BY teacher_id, student_id`
	records := []models.CommissionRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list commission rates: %w", err)
	}
	return records, nil
}

// UpsertRate writes the rate and currency for a (teacher, student) pair.
func (r *CommissionRepository) UpsertRate(ctx context.Context, teacherID, studentID int64, commissionPerClass float64, currency models.Currency) (*models.CommissionRecord, error) {
	query := `INSERT INTO teacher_student_commission (teacher_id, student_id, commission_per_class, currency, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (teacher_id, student_id)
DO UPDATE SET commission_per_class = EXCLUDED.commission_per_class, currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at
RETURNING teacher_id, student_id, commission_per_class, currency, updated_at`
	var stored models.CommissionRecord
	if err := r.db.GetContext(ctx, &stored, query, teacherID, studentID, commissionPerClass, currency, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert commission rate: %w", err)
	}
	return &stored, nil
}

const teacherPaymentColumns = `teacher_id, student_id, year, month, paid, TO_CHAR(payment_date, 'YYYY-MM-DD') AS payment_date, notes`

// ListPaymentsByMonth returns every teacher payout record for a billing month.
func (r *CommissionRepository) ListPaymentsByMonth(ctx context.Context, year, month int) ([]models.TeacherPaymentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM teacher_student_payments
WHERE year = $1 AND month = $2`, teacherPaymentColumns)
	records := []models.TeacherPaymentRecord{}
	if err := r.db.SelectContext(ctx, &records, query, year, month); err != nil {
		return nil, fmt.Errorf("list teacher payments: %w", err)
	}
	return records, nil
}

// UpsertPayment writes the payout state for its key.
func (r *CommissionRepository) UpsertPayment(ctx context.Context, record *models.TeacherPaymentRecord) (*models.TeacherPaymentRecord, error) {
	query := fmt.Sprintf(`INSERT INTO teacher_student_payments (teacher_id, student_id, year, month, paid, payment_date, notes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (teacher_id, student_id, year, month)
DO UPDATE SET paid = EXCLUDED.paid, payment_date = EXCLUDED.payment_date, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
RETURNING %s`, teacherPaymentColumns)
	var stored models.TeacherPaymentRecord
	if err := r.db.GetContext(ctx, &stored, query,
		record.TeacherID, record.StudentID, record.Year, record.Month, record.Paid, record.PaymentDate, record.Notes, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("upsert teacher payment: %w", err)
	}
	return &stored, nil
}
