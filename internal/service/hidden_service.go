package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type hiddenStore interface {
	List(ctx context.Context) ([]models.HiddenRow, error)
	Upsert(ctx context.Context, studentID int64, subject models.Subject, from models.YearMonth) (*models.HiddenRow, error)
	Delete(ctx context.Context, studentID int64, subject models.Subject) (*models.HiddenRow, error)
}

// HideRowRequest suppresses a roster row from a period onward. Year and month
// default to the current month when omitted.
type HideRowRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	Subject   *string `json:"subject"`
	Year      int     `json:"year"`
	Month     int     `json:"month" validate:"min=0,max=12"`
}

// UnhideRowRequest restores a previously hidden row.
type UnhideRowRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	Subject   *string `json:"subject"`
}

// HiddenRowService manages the set of suppressed roster rows and resolves
// student names for the admin listing.
type HiddenRowService struct {
	store     hiddenStore
	students  studentSource
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewHiddenRowService constructs HiddenRowService.
func NewHiddenRowService(store hiddenStore, students studentSource, validate *validator.Validate, logger *zap.Logger) *HiddenRowService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HiddenRowService{store: store, students: students, validator: validate, logger: logger, now: time.Now}
}

// List returns every hidden row with names resolved from the scheduler.
// Rows for students the scheduler no longer knows keep their bare id.
func (s *HiddenRowService) List(ctx context.Context) ([]models.HiddenRowView, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list hidden rows")
	}
	students, err := s.students.ListActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.HiddenRowView, 0, len(rows))
	for _, row := range rows {
		view := models.HiddenRowView{HiddenRow: row}
		for _, st := range students {
			if st.ID == row.StudentID {
				name, localized := models.SplitDisplayName(st.Name)
				if localized == nil {
					localized = st.LocalizedName
				}
				view.StudentName = name
				view.LocalizedName = localized
				view.SecondaryName = st.SecondaryName
				break
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Hide suppresses a (student, subject) row from the given period onward.
func (s *HiddenRowService) Hide(ctx context.Context, req HideRowRequest) (*models.HiddenRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hide payload")
	}
	from := models.YearMonth{Year: req.Year, Month: req.Month}
	if from.Year == 0 || from.Month == 0 {
		now := s.now()
		from = models.YearMonth{Year: now.Year(), Month: int(now.Month())}
	}
	stored, err := s.store.Upsert(ctx, req.StudentID, models.SubjectOf(req.Subject), from)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hide row")
	}
	return stored, nil
}

// Unhide restores a row; ErrNotFound when it was not hidden, with no mutation.
func (s *HiddenRowService) Unhide(ctx context.Context, req UnhideRowRequest) (*models.HiddenRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unhide payload")
	}
	removed, err := s.store.Delete(ctx, req.StudentID, models.SubjectOf(req.Subject))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "row is not hidden")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unhide row")
	}
	return removed, nil
}
