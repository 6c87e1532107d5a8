package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// AttendanceRepository handles persistence for attendance marks.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `id, student_id, TO_CHAR(date, 'YYYY-MM-DD') AS date, subject, status, notes, created_at, updated_at`

// Find returns the record for one (student, date, subject) key. The subject
// comparison uses IS NOT DISTINCT FROM so the absent subject is a real key
// value, never a wildcard.
func (r *AttendanceRepository) Find(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendance
WHERE student_id = $1 AND date = $2 AND subject IS NOT DISTINCT FROM $3`, attendanceColumns)
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, studentID, date, subject); err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert inserts or updates the record for its (student, date, subject) key.
// The attendance unique index treats NULL subjects as equal, so the absent
// subject upserts in place like any named one.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	query := fmt.Sprintf(`INSERT INTO attendance (id, student_id, date, subject, status, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (student_id, date, subject)
DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
RETURNING %s`, attendanceColumns)
	var stored models.AttendanceRecord
	if err := r.db.GetContext(ctx, &stored, query,
		record.ID, record.StudentID, record.Date, record.Subject, record.Status, record.Notes, record.CreatedAt, record.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &stored, nil
}

// Delete removes the record for a key and returns it; sql.ErrNoRows when the
// key has no record.
func (r *AttendanceRepository) Delete(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`DELETE FROM attendance
WHERE student_id = $1 AND date = $2 AND subject IS NOT DISTINCT FROM $3
RETURNING %s`, attendanceColumns)
	var removed models.AttendanceRecord
	if err := r.db.GetContext(ctx, &removed, query, studentID, date, subject); err != nil {
		return nil, err
	}
	return &removed, nil
}

// ListByDateRange returns every record in [from, to] across all students and
// subjects, ordered for the month grid.
func (r *AttendanceRepository) ListByDateRange(ctx context.Context, from, to string) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendance
WHERE date >= $1 AND date <= $2
ORDER BY date, student_id, subject`, attendanceColumns)
	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListByStatusInRange returns records in [from, to] whose status is in the
// given set.
func (r *AttendanceRepository) ListByStatusInRange(ctx context.Context, from, to string, statuses []models.AttendanceStatus) ([]models.AttendanceRecord, error) {
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM attendance
WHERE date >= ? AND date <= ? AND status IN (?)
ORDER BY date, student_id, subject`, attendanceColumns), from, to, statuses)
	if err != nil {
		return nil, fmt.Errorf("build status range query: %w", err)
	}
	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list attendance by status: %w", err)
	}
	return records, nil
}

// CountByStatus counts one student-subject key's records in [from, to] whose
// status is in the given set.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, studentID int64, subject models.Subject, from, to string, statuses []models.AttendanceStatus) (int, error) {
	query, args, err := sqlx.In(`SELECT COUNT(*) FROM attendance
WHERE student_id = ? AND subject IS NOT DISTINCT FROM ? AND date >= ? AND date <= ? AND status IN (?)`,
		studentID, subject, from, to, statuses)
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

// PresentCountsByRange returns per-student counts of 'present' marks in
// [from, to], summed across all subjects. Presence is deliberately
// per-student: one present mark feeds every subject row the student bills.
func (r *AttendanceRepository) PresentCountsByRange(ctx context.Context, from, to string) (map[int64]int, error) {
	query := `SELECT student_id, COUNT(*) AS present_count FROM attendance
WHERE date >= $1 AND date <= $2 AND status = $3
GROUP BY student_id`
	rows := []struct {
		StudentID    int64 `db:"student_id"`
		PresentCount int   `db:"present_count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, from, to, models.AttendanceStatusPresent); err != nil {
		return nil, fmt.Errorf("count present attendance: %w", err)
	}
	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.StudentID] = row.PresentCount
	}
	return counts, nil
}

// StudentSummary aggregates one student's marks across [from, to].
func (r *AttendanceRepository) StudentSummary(ctx context.Context, studentID int64, from, to string) (*models.StudentSummary, error) {
	query := `SELECT
COUNT(*) FILTER (WHERE status = 'present') AS present_count,
COUNT(*) FILTER (WHERE status = 'absent') AS absent_count,
COUNT(*) AS total_records
FROM attendance
WHERE student_id = $1 AND date >= $2 AND date <= $3`
	var summary models.StudentSummary
	if err := r.db.GetContext(ctx, &summary, query, studentID, from, to); err != nil {
		return nil, fmt.Errorf("student summary: %w", err)
	}
	return &summary, nil
}

// MonthlySummaryCounts aggregates per-student present/absent counts across
// [from, to].
func (r *AttendanceRepository) MonthlySummaryCounts(ctx context.Context, from, to string) ([]models.MonthlySummaryRow, error) {
	query := `SELECT student_id,
COUNT(*) FILTER (WHERE status = 'present') AS present_count,
COUNT(*) FILTER (WHERE status = 'absent') AS absent_count
FROM attendance
WHERE date >= $1 AND date <= $2
GROUP BY student_id
ORDER BY student_id`
	rows := []models.MonthlySummaryRow{}
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}
	return rows, nil
}
