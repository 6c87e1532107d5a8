package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type holidayStore interface {
	List(ctx context.Context) ([]models.Holiday, error)
	ListByRange(ctx context.Context, from, to string) ([]models.Holiday, error)
	Upsert(ctx context.Context, date, name string) (*models.Holiday, error)
	Delete(ctx context.Context, id string) (*models.Holiday, error)
}

// AddHolidayRequest registers a no-class date. Name is optional; an unnamed
// holiday is stored with an empty name.
type AddHolidayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name"`
}

// HolidayService stores no-class dates. The grid uses them for display and
// percentage math; marking on a holiday is never rejected server-side.
type HolidayService struct {
	store     holidayStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs HolidayService.
func NewHolidayService(store holidayStore, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{store: store, validator: validate, logger: logger}
}

// List returns every holiday.
func (s *HolidayService) List(ctx context.Context) ([]models.Holiday, error) {
	holidays, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return holidays, nil
}

// ListMonth returns the holidays of one month.
func (s *HolidayService) ListMonth(ctx context.Context, year, month int) ([]models.Holiday, error) {
	from, to := models.YearMonth{Year: year, Month: month}.MonthBounds()
	holidays, err := s.store.ListByRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return holidays, nil
}

// Add stores a holiday; re-adding the same date renames it.
func (s *HolidayService) Add(ctx context.Context, req AddHolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}
	stored, err := s.store.Upsert(ctx, req.Date, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save holiday")
	}
	return stored, nil
}

// Remove deletes a holiday by id; ErrNotFound when unknown.
func (s *HolidayService) Remove(ctx context.Context, id string) (*models.Holiday, error) {
	removed, err := s.store.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no such holiday")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete holiday")
	}
	return removed, nil
}
