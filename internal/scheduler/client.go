package scheduler

import (
	"context"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
)

// Student is the scheduler's view of a student. The display name may still
// carry a bracketed localized segment; the roster resolver splits it.
type Student struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	LocalizedName *string `json:"korean_name"`
	SecondaryName *string `json:"english_name"`
	Active        bool    `json:"is_active"`
}

// Assignment is one recurring (student, subject, teacher, slot) entry.
// StartTime and EndTime are 24h "15:04" strings; Weekdays uses 0=Sunday..6.
type Assignment struct {
	StudentID   int64          `json:"student_id"`
	Subject     models.Subject `json:"subject"`
	TeacherID   *int64         `json:"teacher_id"`
	TeacherName *string        `json:"teacher_name"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	Weekdays    []int          `json:"weekdays"`
	Active      bool           `json:"is_active"`
}

// Participant is a student or teacher reference on a dated occurrence.
type Participant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Occurrence is one dated class instance inside a queried range.
type Occurrence struct {
	Date     string        `json:"date"`
	Active   bool          `json:"is_active"`
	Students []Participant `json:"students"`
	Teachers []Participant `json:"teachers"`
}

// Client is the read-only boundary to the external online scheduler. The
// scheduler owns student, teacher and assignment master data; this app never
// writes through it. Implementations must surface connectivity problems as
// upstream errors, never as empty results.
type Client interface {
	ListActiveStudents(ctx context.Context) ([]Student, error)
	ListActiveAssignments(ctx context.Context) ([]Assignment, error)
	ListAssignmentsInRange(ctx context.Context, startDate string, daysCount int) ([]Occurrence, error)
	ListActiveTeachers(ctx context.Context) ([]models.Teacher, error)
}
