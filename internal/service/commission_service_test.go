package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type commissionStoreStub struct {
	rates           []models.CommissionRecord
	payments        []models.TeacherPaymentRecord
	upsertedRates   []models.CommissionRecord
	upsertedPayouts []models.TeacherPaymentRecord
}

func (s *commissionStoreStub) ListRates(ctx context.Context) ([]models.CommissionRecord, error) {
	return s.rates, nil
}

func (s *commissionStoreStub) UpsertRate(ctx context.Context, teacherID, studentID int64, commissionPerClass float64, currency models.Currency) (*models.CommissionRecord, error) {
	record := models.CommissionRecord{TeacherID: teacherID, StudentID: studentID, CommissionPerClass: commissionPerClass, Currency: currency}
	s.upsertedRates = append(s.upsertedRates, record)
	return &record, nil
}

func (s *commissionStoreStub) ListPaymentsByMonth(ctx context.Context, year, month int) ([]models.TeacherPaymentRecord, error) {
	return s.payments, nil
}

func (s *commissionStoreStub) UpsertPayment(ctx context.Context, record *models.TeacherPaymentRecord) (*models.TeacherPaymentRecord, error) {
	s.upsertedPayouts = append(s.upsertedPayouts, *record)
	return record, nil
}

func TestPrimaryTeacherPicksMostOccurrences(t *testing.T) {
	assignments := []scheduler.Assignment{
		{StudentID: 1, TeacherID: i64Ptr(10), TeacherName: strPtr("Cruz"), Weekdays: []int{1, 3, 5}, Active: true},
		{StudentID: 1, TeacherID: i64Ptr(20), TeacherName: strPtr("Reyes"), Weekdays: []int{2}, Active: true},
	}
	primary := primaryTeachers(assignments)
	require.Contains(t, primary, int64(1))
	assert.Equal(t, int64(10), primary[1].id)
	assert.Equal(t, "Cruz", primary[1].name)
}

func TestPrimaryTeacherTieBreaksBySmallerID(t *testing.T) {
	assignments := []scheduler.Assignment{
		{StudentID: 1, TeacherID: i64Ptr(20), TeacherName: strPtr("Reyes"), Weekdays: []int{2, 4}, Active: true},
		{StudentID: 1, TeacherID: i64Ptr(10), TeacherName: strPtr("Cruz"), Weekdays: []int{1, 3}, Active: true},
	}
	primary := primaryTeachers(assignments)
	assert.Equal(t, int64(10), primary[1].id)
}

func TestComputeCommissionsJoinsRatesAndPayouts(t *testing.T) {
	sched := &fakeScheduler{
		students: []scheduler.Student{
			{ID: 1, Name: "Alice", Active: true},
			{ID: 2, Name: "Ben", Active: true},
		},
		assignments: []scheduler.Assignment{
			{StudentID: 1, TeacherID: i64Ptr(10), TeacherName: strPtr("Cruz"), Weekdays: []int{1, 3}, Active: true},
		},
	}
	store := &commissionStoreStub{
		rates: []models.CommissionRecord{
			{TeacherID: 10, StudentID: 1, CommissionPerClass: 150, Currency: models.CurrencyPHP},
		},
		payments: []models.TeacherPaymentRecord{
			{TeacherID: 10, StudentID: 1, Year: 2026, Month: 8, Paid: true, PaymentDate: strPtr("2026-08-20")},
		},
	}
	counts := &fakePresentCounter{counts: map[int64]int{1: 6}}
	svc := NewCommissionService(sched, counts, store, nil, nil)

	rows, err := svc.ComputeCommissions(context.Background(), 2026, 8)
	require.NoError(t, err)
	// Ben has no teacher, so no commission row.
	require.Len(t, rows, 1)
	assert.Equal(t, "10-1", rows[0].ID)
	assert.Equal(t, 6, rows[0].ClassCount)
	assert.Equal(t, 900.0, rows[0].TotalCommission)
	assert.True(t, rows[0].Paid)
}

func TestComputeCommissionsDefaultsRateToZeroPHP(t *testing.T) {
	sched := &fakeScheduler{
		students: []scheduler.Student{{ID: 1, Name: "Alice", Active: true}},
		assignments: []scheduler.Assignment{
			{StudentID: 1, TeacherID: i64Ptr(10), TeacherName: strPtr("Cruz"), Weekdays: []int{1}, Active: true},
		},
	}
	svc := NewCommissionService(sched, &fakePresentCounter{counts: map[int64]int{1: 3}}, &commissionStoreStub{}, nil, nil)

	rows, err := svc.ComputeCommissions(context.Background(), 2026, 8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].TotalCommission)
	assert.Equal(t, models.CurrencyPHP, rows[0].Currency)
	assert.False(t, rows[0].Paid)
}

func TestSummarizeCommissions(t *testing.T) {
	sched := &fakeScheduler{
		students: []scheduler.Student{
			{ID: 1, Name: "Alice", Active: true},
			{ID: 2, Name: "Ben", Active: true},
		},
		assignments: []scheduler.Assignment{
			{StudentID: 1, TeacherID: i64Ptr(10), TeacherName: strPtr("Cruz"), Weekdays: []int{1}, Active: true},
			{StudentID: 2, TeacherID: i64Ptr(10), TeacherName: strPtr("Cruz"), Weekdays: []int{1}, Active: true},
		},
	}
	store := &commissionStoreStub{
		rates: []models.CommissionRecord{
			{TeacherID: 10, StudentID: 1, CommissionPerClass: 100, Currency: models.CurrencyPHP},
			{TeacherID: 10, StudentID: 2, CommissionPerClass: 200, Currency: models.CurrencyPHP},
		},
		payments: []models.TeacherPaymentRecord{
			{TeacherID: 10, StudentID: 1, Year: 2026, Month: 8, Paid: true},
		},
	}
	counts := &fakePresentCounter{counts: map[int64]int{1: 2, 2: 3}}
	svc := NewCommissionService(sched, counts, store, nil, nil)

	summary, err := svc.SummarizeCommissions(context.Background(), 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, 5, summary.TotalClasses)
	php := summary.ByCurrency[models.CurrencyPHP]
	require.NotNil(t, php)
	assert.Equal(t, 800.0, php.Total)
	assert.Equal(t, 200.0, php.Paid)
	assert.Equal(t, 600.0, php.Unpaid)
}

func TestToggleTeacherPayment(t *testing.T) {
	store := &commissionStoreStub{}
	svc := NewCommissionService(&fakeScheduler{}, &fakePresentCounter{}, store, nil, nil)

	stored, err := svc.ToggleTeacherPayment(context.Background(), ToggleTeacherPaymentRequest{
		TeacherID: 10, StudentID: 1, Year: 2026, Month: 8,
	})
	require.NoError(t, err)
	assert.True(t, stored.Paid)
	require.NotNil(t, stored.PaymentDate)

	store.payments = []models.TeacherPaymentRecord{*stored}
	flipped, err := svc.ToggleTeacherPayment(context.Background(), ToggleTeacherPaymentRequest{
		TeacherID: 10, StudentID: 1, Year: 2026, Month: 8,
	})
	require.NoError(t, err)
	assert.False(t, flipped.Paid)
	assert.Nil(t, flipped.PaymentDate)
}

func TestSetCommissionValidatesCurrency(t *testing.T) {
	svc := NewCommissionService(&fakeScheduler{}, &fakePresentCounter{}, &commissionStoreStub{}, nil, nil)

	_, err := svc.SetCommission(context.Background(), SetCommissionRequest{
		TeacherID: 10, StudentID: 1, CommissionPerClass: 100, Currency: "EUR",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestListTeachersSorted(t *testing.T) {
	sched := &fakeScheduler{teachers: []models.Teacher{
		{ID: 2, Name: "Reyes"},
		{ID: 1, Name: "Cruz"},
	}}
	svc := NewCommissionService(sched, &fakePresentCounter{}, &commissionStoreStub{}, nil, nil)

	teachers, err := svc.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Cruz", teachers[0].Name)
}
