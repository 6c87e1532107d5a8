package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type commissionStore interface {
	ListRates(ctx context.Context) ([]models.CommissionRecord, error)
	UpsertRate(ctx context.Context, teacherID, studentID int64, commissionPerClass float64, currency models.Currency) (*models.CommissionRecord, error)
	ListPaymentsByMonth(ctx context.Context, year, month int) ([]models.TeacherPaymentRecord, error)
	UpsertPayment(ctx context.Context, record *models.TeacherPaymentRecord) (*models.TeacherPaymentRecord, error)
}

type commissionSchedulerSource interface {
	ListActiveStudents(ctx context.Context) ([]scheduler.Student, error)
	ListActiveAssignments(ctx context.Context) ([]scheduler.Assignment, error)
	ListActiveTeachers(ctx context.Context) ([]models.Teacher, error)
}

// SetCommissionRequest writes a (teacher, student) commission rate.
type SetCommissionRequest struct {
	TeacherID          int64   `json:"teacher_id" validate:"required"`
	StudentID          int64   `json:"student_id" validate:"required"`
	CommissionPerClass float64 `json:"commission_per_class" validate:"gte=0"`
	Currency           string  `json:"currency"`
}

// ToggleTeacherPaymentRequest flips a month's commission payout state.
type ToggleTeacherPaymentRequest struct {
	TeacherID int64 `json:"teacher_id" validate:"required"`
	StudentID int64 `json:"student_id" validate:"required"`
	Year      int   `json:"year" validate:"required"`
	Month     int   `json:"month" validate:"required,min=1,max=12"`
}

// CommissionService computes the monthly per-teacher commission view and owns
// the rate and payout mutations.
type CommissionService struct {
	scheduler  commissionSchedulerSource
	attendance presentCounter
	store      commissionStore
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCommissionService constructs CommissionService.
func NewCommissionService(sched commissionSchedulerSource, attendance presentCounter, store commissionStore, validate *validator.Validate, logger *zap.Logger) *CommissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommissionService{scheduler: sched, attendance: attendance, store: store, validator: validate, logger: logger}
}

type teacherWeight struct {
	id     int64
	name   string
	weight int
}

// primaryTeachers picks one teacher per student: the one with the most weekly
// class occurrences across that student's active assignments. Ties break
// toward the smaller teacher id so the pick is stable between calls.
func primaryTeachers(assignments []scheduler.Assignment) map[int64]teacherWeight {
	weights := map[int64]map[int64]*teacherWeight{}
	for _, a := range assignments {
		if !a.Active || a.TeacherID == nil {
			continue
		}
		byTeacher, ok := weights[a.StudentID]
		if !ok {
			byTeacher = map[int64]*teacherWeight{}
			weights[a.StudentID] = byTeacher
		}
		w, ok := byTeacher[*a.TeacherID]
		if !ok {
			name := ""
			if a.TeacherName != nil {
				name = *a.TeacherName
			}
			w = &teacherWeight{id: *a.TeacherID, name: name}
			byTeacher[*a.TeacherID] = w
		}
		occurrences := len(a.Weekdays)
		if occurrences == 0 {
			occurrences = 1
		}
		w.weight += occurrences
	}

	primary := make(map[int64]teacherWeight, len(weights))
	for studentID, byTeacher := range weights {
		var best *teacherWeight
		for _, w := range byTeacher {
			if best == nil || w.weight > best.weight || (w.weight == best.weight && w.id < best.id) {
				best = w
			}
		}
		primary[studentID] = *best
	}
	return primary
}

// ComputeCommissions builds one row per (primary teacher, student) for the
// month. The class count is the student's shared present count, the same
// number tuition bills against.
func (s *CommissionService) ComputeCommissions(ctx context.Context, year, month int) ([]models.CommissionRow, error) {
	students, err := s.scheduler.ListActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.scheduler.ListActiveAssignments(ctx)
	if err != nil {
		return nil, err
	}

	rates, err := s.store.ListRates(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load commission rates")
	}
	rateByKey := make(map[string]models.CommissionRecord, len(rates))
	for _, r := range rates {
		rateByKey[fmt.Sprintf("%d-%d", r.TeacherID, r.StudentID)] = r
	}

	payments, err := s.store.ListPaymentsByMonth(ctx, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher payments")
	}
	paymentByKey := make(map[string]models.TeacherPaymentRecord, len(payments))
	for _, p := range payments {
		paymentByKey[fmt.Sprintf("%d-%d", p.TeacherID, p.StudentID)] = p
	}

	from, to := models.YearMonth{Year: year, Month: month}.MonthBounds()
	presentCounts, err := s.attendance.PresentCountsByRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count presence")
	}

	primary := primaryTeachers(assignments)

	rows := make([]models.CommissionRow, 0, len(primary))
	for _, student := range students {
		if !student.Active {
			continue
		}
		teacher, ok := primary[student.ID]
		if !ok {
			continue
		}
		name, localized := models.SplitDisplayName(student.Name)
		if localized == nil {
			localized = student.LocalizedName
		}
		key := fmt.Sprintf("%d-%d", teacher.id, student.ID)

		rate, currency := 0.0, models.CurrencyPHP
		if r, ok := rateByKey[key]; ok {
			rate = r.CommissionPerClass
			if r.Currency.Valid() {
				currency = r.Currency
			}
		}
		classCount := presentCounts[student.ID]

		row := models.CommissionRow{
			ID:                 key,
			StudentID:          student.ID,
			StudentName:        name,
			LocalizedName:      localized,
			SecondaryName:      student.SecondaryName,
			TeacherID:          teacher.id,
			TeacherName:        teacher.name,
			CommissionPerClass: rate,
			Currency:           currency,
			ClassCount:         classCount,
			TotalCommission:    rate * float64(classCount),
		}
		if p, ok := paymentByKey[key]; ok {
			row.Paid = p.Paid
			row.PaymentDate = p.PaymentDate
			row.PaymentNotes = p.Notes
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TeacherName != rows[j].TeacherName {
			return rows[i].TeacherName < rows[j].TeacherName
		}
		return rows[i].StudentName < rows[j].StudentName
	})
	return rows, nil
}

// SummarizeCommissions reduces the month's commission rows by currency.
func (s *CommissionService) SummarizeCommissions(ctx context.Context, year, month int) (*models.CommissionSummary, error) {
	rows, err := s.ComputeCommissions(ctx, year, month)
	if err != nil {
		return nil, err
	}
	summary := &models.CommissionSummary{
		TotalRows:  len(rows),
		ByCurrency: map[models.Currency]*models.CurrencyTotals{},
	}
	for _, row := range rows {
		summary.TotalClasses += row.ClassCount
		if row.Paid {
			summary.PaidCount++
		} else if row.TotalCommission > 0 {
			summary.UnpaidCount++
		}
		totals, ok := summary.ByCurrency[row.Currency]
		if !ok {
			totals = &models.CurrencyTotals{}
			summary.ByCurrency[row.Currency] = totals
		}
		totals.Add(row.TotalCommission, row.Paid)
	}
	return summary, nil
}

// SetCommission upserts the rate for a (teacher, student) pair.
func (s *CommissionService) SetCommission(ctx context.Context, req SetCommissionRequest) (*models.CommissionRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid commission payload")
	}
	currency := models.CurrencyPHP
	if req.Currency != "" {
		currency = models.Currency(req.Currency)
		if !currency.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "currency must be PHP or KRW")
		}
	}
	stored, err := s.store.UpsertRate(ctx, req.TeacherID, req.StudentID, req.CommissionPerClass, currency)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save commission")
	}
	return stored, nil
}

// ToggleTeacherPayment flips the month's payout flag for a pair, with the
// same date-stamp and note-carrying rules as tuition payments.
func (s *CommissionService) ToggleTeacherPayment(ctx context.Context, req ToggleTeacherPaymentRequest) (*models.TeacherPaymentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payout payload")
	}
	payments, err := s.store.ListPaymentsByMonth(ctx, req.Year, req.Month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher payments")
	}
	record := &models.TeacherPaymentRecord{
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Year:      req.Year,
		Month:     req.Month,
	}
	for _, p := range payments {
		if p.TeacherID == req.TeacherID && p.StudentID == req.StudentID {
			record.Paid = p.Paid
			record.Notes = p.Notes
			break
		}
	}
	record.Paid = !record.Paid
	if record.Paid {
		today := time.Now().Format("2006-01-02")
		record.PaymentDate = &today
	} else {
		record.PaymentDate = nil
	}
	stored, err := s.store.UpsertPayment(ctx, record)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save teacher payment")
	}
	return stored, nil
}

// ListTeachers returns the active teachers sorted by name.
func (s *CommissionService) ListTeachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.scheduler.ListActiveTeachers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(teachers, func(i, j int) bool {
		if teachers[i].Name != teachers[j].Name {
			return teachers[i].Name < teachers[j].Name
		}
		return teachers[i].ID < teachers[j].ID
	})
	return teachers, nil
}
