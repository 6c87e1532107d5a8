package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type attendanceStore interface {
	Find(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.AttendanceRecord, error)
	CountByStatus(ctx context.Context, studentID int64, subject models.Subject, from, to string, statuses []models.AttendanceStatus) (int, error)
	StudentSummary(ctx context.Context, studentID int64, from, to string) (*models.StudentSummary, error)
	MonthlySummaryCounts(ctx context.Context, from, to string) ([]models.MonthlySummaryRow, error)
}

type noteStore interface {
	ListByMonth(ctx context.Context, year, month int) ([]models.Note, error)
	Upsert(ctx context.Context, note *models.Note) (*models.Note, error)
}

type studentSource interface {
	ListActiveStudents(ctx context.Context) ([]scheduler.Student, error)
}

// SetStatusRequest marks one (student, date, subject) cell.
type SetStatusRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Subject   *string `json:"subject"`
	Status    string  `json:"status" validate:"required"`
	Notes     *string `json:"notes"`
}

// CycleRequest advances one cell through the status cycle.
type CycleRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Subject   *string `json:"subject"`
}

// SetNoteRequest attaches free text to a month cell.
type SetNoteRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	Year      int     `json:"year" validate:"required"`
	Month     int     `json:"month" validate:"required,min=1,max=12"`
	Subject   *string `json:"subject"`
	Notes     string  `json:"notes"`
}

// AttendanceService owns the attendance ledger: marks, the status cycle,
// month listings and the summary views.
type AttendanceService struct {
	repo      attendanceStore
	notes     noteStore
	students  studentSource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs AttendanceService.
func NewAttendanceService(repo attendanceStore, notes noteStore, students studentSource, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, notes: notes, students: students, validator: validate, logger: logger}
}

// Set writes a status directly. Only present, absent and ta pass this
// boundary; noshow is reachable through Cycle alone.
func (s *AttendanceService) Set(ctx context.Context, req SetStatusRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	status := models.AttendanceStatus(req.Status)
	if !status.Markable() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of present, absent, ta")
	}
	record := &models.AttendanceRecord{
		StudentID: req.StudentID,
		Date:      req.Date,
		Subject:   models.SubjectOf(req.Subject),
		Status:    status,
		Notes:     req.Notes,
	}
	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	return stored, nil
}

// Cycle advances a cell one step: present, absent, ta, noshow, cleared. A
// cell with no record starts at present. The caller supplies no target state;
// the next state is a pure function of the stored one.
func (s *AttendanceService) Cycle(ctx context.Context, req CycleRequest) (*models.ToggleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid toggle payload")
	}
	subject := models.SubjectOf(req.Subject)

	current, err := s.repo.Find(ctx, req.StudentID, subject, req.Date)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}

	result := &models.ToggleResult{StudentID: req.StudentID, Date: req.Date, Subject: subject}

	if current == nil {
		stored, err := s.repo.Upsert(ctx, &models.AttendanceRecord{
			StudentID: req.StudentID,
			Date:      req.Date,
			Subject:   subject,
			Status:    models.AttendanceStatusPresent,
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
		}
		result.Status = &stored.Status
		result.Record = stored
		return result, nil
	}

	next, ok := current.Status.Next()
	if !ok {
		if _, err := s.repo.Delete(ctx, req.StudentID, subject, req.Date); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear attendance")
		}
		return result, nil
	}

	current.Status = next
	stored, err := s.repo.Upsert(ctx, current)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	result.Status = &stored.Status
	result.Record = stored
	return result, nil
}

// Clear removes a cell's record, returning it. ErrNotFound when the cell was
// already empty; nothing is mutated in that case.
func (s *AttendanceService) Clear(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error) {
	removed, err := s.repo.Delete(ctx, studentID, subject, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no attendance record for that day")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
	}
	return removed, nil
}

// CountByStatus counts one cell key's records over a date range restricted to
// a status set.
func (s *AttendanceService) CountByStatus(ctx context.Context, studentID int64, subject models.Subject, from, to string, statuses []models.AttendanceStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "at least one status is required")
	}
	for _, status := range statuses {
		if !status.Valid() {
			return 0, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
		}
	}
	count, err := s.repo.CountByStatus(ctx, studentID, subject, from, to, statuses)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}
	return count, nil
}

// ListMonth returns every record of the month across all students and
// subjects.
func (s *AttendanceService) ListMonth(ctx context.Context, year, month int) ([]models.AttendanceRecord, error) {
	from, to := models.YearMonth{Year: year, Month: month}.MonthBounds()
	records, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// StudentSummary aggregates one student's month.
func (s *AttendanceService) StudentSummary(ctx context.Context, studentID int64, year, month int) (*models.StudentSummary, error) {
	from, to := models.YearMonth{Year: year, Month: month}.MonthBounds()
	summary, err := s.repo.StudentSummary(ctx, studentID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise attendance")
	}
	return summary, nil
}

// MonthlySummary aggregates per-student present/absent counts for the month,
// with names resolved from the scheduler. Students the scheduler no longer
// knows keep their counts under their bare id.
func (s *AttendanceService) MonthlySummary(ctx context.Context, year, month int) ([]models.MonthlySummaryRow, error) {
	from, to := models.YearMonth{Year: year, Month: month}.MonthBounds()
	rows, err := s.repo.MonthlySummaryCounts(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise attendance")
	}
	students, err := s.students.ListActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]scheduler.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}
	for i := range rows {
		if st, ok := byID[rows[i].StudentID]; ok {
			name, _ := models.SplitDisplayName(st.Name)
			rows[i].Name = name
			rows[i].SecondaryName = st.SecondaryName
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].StudentID < rows[j].StudentID
	})
	return rows, nil
}

// Notes returns every month note.
func (s *AttendanceService) Notes(ctx context.Context, year, month int) ([]models.Note, error) {
	notes, err := s.notes.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}

// SetNote upserts the free-text note for a month cell.
func (s *AttendanceService) SetNote(ctx context.Context, req SetNoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	stored, err := s.notes.Upsert(ctx, &models.Note{
		StudentID: req.StudentID,
		Year:      req.Year,
		Month:     req.Month,
		Subject:   models.SubjectOf(req.Subject),
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save note")
	}
	return stored, nil
}
