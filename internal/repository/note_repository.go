package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// NoteRepository handles free-text notes attached to month cells.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs the repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByMonth returns every note for a (year, month).
func (r *NoteRepository) ListByMonth(ctx context.Context, year, month int) ([]models.Note, error) {
	query := `SELECT student_id, year, month, subject, notes, updated_at
FROM attendance_notes
WHERE year = $1 AND month = $2
ORDER BY student_id, subject`
	notes := []models.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, year, month); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Upsert writes the note text for its (student, year, month, subject) key.
// The unique index treats NULL subjects as equal, so the absent subject keys a
// single note like any named one.
func (r *NoteRepository) Upsert(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `INSERT INTO attendance_notes (student_id, year, month, subject, notes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_id, year, month, subject)
DO UPDATE SET notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
RETURNING student_id, year, month, subject, notes, updated_at`
	var stored models.Note
	if err := r.db.GetContext(ctx, &stored, query,
		note.StudentID, note.Year, note.Month, note.Subject, note.Notes, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("upsert note: %w", err)
	}
	return &stored, nil
}
