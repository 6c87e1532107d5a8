package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// HiddenRepository handles the set of suppressed roster rows.
type HiddenRepository struct {
	db *sqlx.DB
}

// NewHiddenRepository constructs the repository.
func NewHiddenRepository(db *sqlx.DB) *HiddenRepository {
	return &HiddenRepository{db: db}
}

// List returns every hidden-row record.
func (r *HiddenRepository) List(ctx context.Context) ([]models.HiddenRow, error) {
	query := `SELECT student_id, subject, hidden_from_year, hidden_from_month, hidden_at
FROM hidden_attendance_rows
ORDER BY student_id, subject`
	rows := []models.HiddenRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list hidden rows: %w", err)
	}
	return rows, nil
}

// Upsert hides a (student, subject) row from the given period onward. Hiding
// an already-hidden row moves its cut to the new period.
func (r *HiddenRepository) Upsert(ctx context.Context, studentID int64, subject models.Subject, from models.YearMonth) (*models.HiddenRow, error) {
	query := `INSERT INTO hidden_attendance_rows (student_id, subject, hidden_from_year, hidden_from_month, hidden_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (student_id, subject)
DO UPDATE SET hidden_from_year = EXCLUDED.hidden_from_year, hidden_from_month = EXCLUDED.hidden_from_month, hidden_at = EXCLUDED.hidden_at
RETURNING student_id, subject, hidden_from_year, hidden_from_month, hidden_at`
	var stored models.HiddenRow
	if err := r.db.GetContext(ctx, &stored, query, studentID, subject, from.Year, from.Month, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert hidden row: %w", err)
	}
	return &stored, nil
}

// Delete unhides a (student, subject) row; sql.ErrNoRows when it was not
// hidden.
func (r *HiddenRepository) Delete(ctx context.Context, studentID int64, subject models.Subject) (*models.HiddenRow, error) {
	query := `DELETE FROM hidden_attendance_rows
WHERE student_id = $1 AND subject IS NOT DISTINCT FROM $2
RETURNING student_id, subject, hidden_from_year, hidden_from_month, hidden_at`
	var removed models.HiddenRow
	if err := r.db.GetContext(ctx, &removed, query, studentID, subject); err != nil {
		return nil, err
	}
	return &removed, nil
}
