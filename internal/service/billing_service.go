package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type rosterResolver interface {
	Resolve(ctx context.Context, asOf *models.YearMonth) ([]models.StudentSubjectRow, error)
}

type presentCounter interface {
	PresentCountsByRange(ctx context.Context, from, to string) (map[int64]int, error)
}

type pricingStore interface {
	ListAll(ctx context.Context) ([]models.PricingRecord, error)
	Upsert(ctx context.Context, studentID int64, subject string, pricePerClass float64, currency models.Currency) (*models.PricingRecord, error)
	InsertIfAbsent(ctx context.Context, studentID int64, subject string) (*models.PricingRecord, error)
	Delete(ctx context.Context, studentID int64, subject string) (*models.PricingRecord, error)
}

type paymentStore interface {
	ListByMonth(ctx context.Context, year, month int) ([]models.PaymentRecord, error)
	Get(ctx context.Context, studentID int64, subject string, year, month int) (*models.PaymentRecord, error)
	Upsert(ctx context.Context, record *models.PaymentRecord) (*models.PaymentRecord, error)
	DeleteForSubject(ctx context.Context, studentID int64, subject string) error
}

type assignmentSource interface {
	ListActiveAssignments(ctx context.Context) ([]scheduler.Assignment, error)
}

// SetPriceRequest writes a (student, subject) tuition rate.
type SetPriceRequest struct {
	StudentID     int64   `json:"student_id" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	PricePerClass float64 `json:"price_per_class" validate:"gte=0"`
	Currency      string  `json:"currency"`
}

// TogglePaymentRequest flips a month's tuition payment state.
type TogglePaymentRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Year      int    `json:"year" validate:"required"`
	Month     int    `json:"month" validate:"required,min=1,max=12"`
}

// SubjectRequest names a (student, subject) pair for add and delete.
type SubjectRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
}

// BillingService joins roster rows, pricing records, shared presence counts
// and payment state into the per-month tuition view, and owns the pricing and
// payment mutations behind it.
type BillingService struct {
	roster      rosterResolver
	attendance  presentCounter
	pricing     pricingStore
	payments    paymentStore
	assignments assignmentSource
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewBillingService constructs BillingService.
func NewBillingService(roster rosterResolver, attendance presentCounter, pricing pricingStore, payments paymentStore, assignments assignmentSource, validate *validator.Validate, logger *zap.Logger) *BillingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{
		roster:      roster,
		attendance:  attendance,
		pricing:     pricing,
		payments:    payments,
		assignments: assignments,
		validator:   validate,
		logger:      logger,
	}
}

// ComputeTuition builds one BillingRow per visible roster row for the month.
// The present count is per student, summed across all subjects, and shared by
// every row of that student. This is the documented business rule: one
// present mark feeds every subject the student bills, including subjects with
// no class that day.
func (s *BillingService) ComputeTuition(ctx context.Context, year, month int) ([]models.BillingRow, error) {
	period := models.YearMonth{Year: year, Month: month}
	rows, err := s.roster.Resolve(ctx, &period)
	if err != nil {
		return nil, err
	}

	pricing, err := s.pricing.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pricing records")
	}
	pricingByKey := make(map[string]models.PricingRecord, len(pricing))
	for _, p := range pricing {
		pricingByKey[models.RowKey(p.StudentID, subjectFromKey(p.Subject))] = p
	}

	from, to := period.MonthBounds()
	presentCounts, err := s.attendance.PresentCountsByRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count presence")
	}

	payments, err := s.payments.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payments")
	}
	paymentByKey := make(map[string]models.PaymentRecord, len(payments))
	for _, p := range payments {
		paymentByKey[models.RowKey(p.StudentID, subjectFromKey(p.Subject))] = p
	}

	billing := make([]models.BillingRow, 0, len(rows))
	for _, row := range rows {
		price, currency := 0.0, models.CurrencyPHP
		if p, ok := pricingByKey[row.RowKey]; ok {
			price = p.PricePerClass
			if p.Currency.Valid() {
				currency = p.Currency
			}
		}
		presentCount := presentCounts[row.StudentID]

		b := models.BillingRow{
			StudentSubjectRow: row,
			PricePerClass:     price,
			Currency:          currency,
			PresentCount:      presentCount,
			TotalTuition:      price * float64(presentCount),
		}
		if p, ok := paymentByKey[row.RowKey]; ok {
			b.Paid = p.Paid
			b.PaymentDate = p.PaymentDate
			b.PaymentNotes = p.Notes
		}
		billing = append(billing, b)
	}
	return billing, nil
}

// SummarizeTuition reduces the month's billing rows by currency.
func (s *BillingService) SummarizeTuition(ctx context.Context, year, month int) (*models.BillingSummary, error) {
	rows, err := s.ComputeTuition(ctx, year, month)
	if err != nil {
		return nil, err
	}
	summary := &models.BillingSummary{
		TotalRows:  len(rows),
		ByCurrency: map[models.Currency]*models.CurrencyTotals{},
	}
	for _, row := range rows {
		summary.TotalPresent += row.PresentCount
		if row.Paid {
			summary.PaidCount++
		} else if row.TotalTuition > 0 {
			summary.UnpaidCount++
		}
		totals, ok := summary.ByCurrency[row.Currency]
		if !ok {
			totals = &models.CurrencyTotals{}
			summary.ByCurrency[row.Currency] = totals
		}
		totals.Add(row.TotalTuition, row.Paid)
	}
	return summary, nil
}

// SetPrice upserts the rate for a pair. Re-saving under a different currency
// keeps the raw number and changes only its unit.
func (s *BillingService) SetPrice(ctx context.Context, req SetPriceRequest) (*models.PricingRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pricing payload")
	}
	currency := models.CurrencyPHP
	if req.Currency != "" {
		currency = models.Currency(req.Currency)
		if !currency.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "currency must be PHP or KRW")
		}
	}
	stored, err := s.pricing.Upsert(ctx, req.StudentID, req.Subject, req.PricePerClass, currency)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save pricing")
	}
	return stored, nil
}

// TogglePayment flips the month's paid flag for a pair. Flipping to paid
// stamps today's date; flipping back clears it. Notes survive the flip.
func (s *BillingService) TogglePayment(ctx context.Context, req TogglePaymentRequest) (*models.PaymentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	current, err := s.payments.Get(ctx, req.StudentID, req.Subject, req.Year, req.Month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	record := &models.PaymentRecord{
		StudentID: req.StudentID,
		Subject:   req.Subject,
		Year:      req.Year,
		Month:     req.Month,
	}
	if current != nil {
		record.Paid = current.Paid
		record.Notes = current.Notes
	}
	record.Paid = !record.Paid
	if record.Paid {
		today := time.Now().Format("2006-01-02")
		record.PaymentDate = &today
	} else {
		record.PaymentDate = nil
	}
	stored, err := s.payments.Upsert(ctx, record)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save payment")
	}
	return stored, nil
}

// AddSubject registers a pair in the pricing store so it shows on the roster.
// Adding an existing pair is a no-op, not an error.
func (s *BillingService) AddSubject(ctx context.Context, req SubjectRequest) (*models.PricingRecord, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	stored, err := s.pricing.InsertIfAbsent(ctx, req.StudentID, req.Subject)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add subject")
	}
	return stored, stored != nil, nil
}

// DeleteSubject removes the pair's pricing record and cascades its payment
// rows for every month. ErrNotFound when no pricing record existed; nothing
// is cascaded in that case.
func (s *BillingService) DeleteSubject(ctx context.Context, req SubjectRequest) (*models.PricingRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	removed, err := s.pricing.Delete(ctx, req.StudentID, req.Subject)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no such subject for student")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if err := s.payments.DeleteForSubject(ctx, req.StudentID, req.Subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cascade payments")
	}
	return removed, nil
}

// ListSubjects returns the distinct subject names on live assignments, for
// the add-subject picker.
func (s *BillingService) ListSubjects(ctx context.Context) ([]string, error) {
	assignments, err := s.assignments.ListActiveAssignments(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	subjects := []string{}
	for _, a := range assignments {
		if !a.Active || !a.Subject.Valid {
			continue
		}
		if _, ok := seen[a.Subject.Name]; ok {
			continue
		}
		seen[a.Subject.Name] = struct{}{}
		subjects = append(subjects, a.Subject.Name)
	}
	sort.Strings(subjects)
	return subjects, nil
}
