package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

func billingRoster() *fakeRoster {
	return &fakeRoster{rows: []models.StudentSubjectRow{
		{StudentID: 1, Name: "Alice", Subject: models.NewSubject("Math"), RowKey: "1-Math"},
		{StudentID: 1, Name: "Alice", Subject: models.NewSubject("Piano"), RowKey: "1-Piano"},
		{StudentID: 2, Name: "Ben", Subject: models.NoSubject(), RowKey: "2-default"},
	}}
}

func TestComputeTuitionSharesPresenceAcrossSubjects(t *testing.T) {
	roster := billingRoster()
	pricing := &fakePricingStore{records: []models.PricingRecord{
		{StudentID: 1, Subject: "Math", PricePerClass: 500, Currency: models.CurrencyPHP},
		{StudentID: 1, Subject: "Piano", PricePerClass: 800, Currency: models.CurrencyKRW},
	}}
	counts := &fakePresentCounter{counts: map[int64]int{1: 4}}
	svc := NewBillingService(roster, counts, pricing, &fakePaymentStore{}, &fakeScheduler{}, nil, nil)

	rows, err := svc.ComputeTuition(context.Background(), 2026, 8)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// One present mark per class day feeds every subject row of the student.
	assert.Equal(t, 4, rows[0].PresentCount)
	assert.Equal(t, 2000.0, rows[0].TotalTuition)
	assert.Equal(t, 4, rows[1].PresentCount)
	assert.Equal(t, 3200.0, rows[1].TotalTuition)
	assert.Equal(t, models.CurrencyKRW, rows[1].Currency)

	// No pricing record: price 0, PHP, unpaid.
	assert.Equal(t, 0.0, rows[2].TotalTuition)
	assert.Equal(t, models.CurrencyPHP, rows[2].Currency)
	assert.False(t, rows[2].Paid)

	require.NotNil(t, roster.asOf)
	assert.Equal(t, 2026, roster.asOf.Year)
	assert.Equal(t, 8, roster.asOf.Month)
}

func TestComputeTuitionJoinsPaymentState(t *testing.T) {
	roster := billingRoster()
	date := "2026-08-15"
	payments := &fakePaymentStore{records: []models.PaymentRecord{
		{StudentID: 1, Subject: "Math", Year: 2026, Month: 8, Paid: true, PaymentDate: &date, Notes: strPtr("gcash")},
	}}
	svc := NewBillingService(roster, &fakePresentCounter{counts: map[int64]int{}}, &fakePricingStore{}, payments, &fakeScheduler{}, nil, nil)

	rows, err := svc.ComputeTuition(context.Background(), 2026, 8)
	require.NoError(t, err)
	assert.True(t, rows[0].Paid)
	require.NotNil(t, rows[0].PaymentDate)
	assert.Equal(t, date, *rows[0].PaymentDate)
	assert.Equal(t, "gcash", *rows[0].PaymentNotes)
	assert.False(t, rows[1].Paid)
}

func TestSummarizeTuitionBuckets(t *testing.T) {
	roster := billingRoster()
	pricing := &fakePricingStore{records: []models.PricingRecord{
		{StudentID: 1, Subject: "Math", PricePerClass: 500, Currency: models.CurrencyPHP},
		{StudentID: 1, Subject: "Piano", PricePerClass: 800, Currency: models.CurrencyPHP},
	}}
	payments := &fakePaymentStore{records: []models.PaymentRecord{
		{StudentID: 1, Subject: "Math", Year: 2026, Month: 8, Paid: true},
	}}
	counts := &fakePresentCounter{counts: map[int64]int{1: 2}}
	svc := NewBillingService(roster, counts, pricing, payments, &fakeScheduler{}, nil, nil)

	summary, err := svc.SummarizeTuition(context.Background(), 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 1, summary.PaidCount)
	// Ben owes 0 and is unpaid: counts toward neither bucket.
	assert.Equal(t, 1, summary.UnpaidCount)

	php := summary.ByCurrency[models.CurrencyPHP]
	require.NotNil(t, php)
	assert.Equal(t, 2600.0, php.Total)
	assert.Equal(t, 1000.0, php.Paid)
	assert.Equal(t, 1600.0, php.Unpaid)
}

func TestSetPriceDefaultsCurrencyAndValidates(t *testing.T) {
	pricing := &fakePricingStore{}
	svc := NewBillingService(&fakeRoster{}, &fakePresentCounter{}, pricing, &fakePaymentStore{}, &fakeScheduler{}, nil, nil)

	stored, err := svc.SetPrice(context.Background(), SetPriceRequest{StudentID: 1, Subject: "Math", PricePerClass: 450})
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyPHP, stored.Currency)

	_, err = svc.SetPrice(context.Background(), SetPriceRequest{StudentID: 1, Subject: "Math", PricePerClass: 450, Currency: "USD"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.SetPrice(context.Background(), SetPriceRequest{StudentID: 1, Subject: "Math", PricePerClass: -1})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestTogglePaymentStampsAndClearsDate(t *testing.T) {
	payments := &fakePaymentStore{}
	svc := NewBillingService(&fakeRoster{}, &fakePresentCounter{}, &fakePricingStore{}, payments, &fakeScheduler{}, nil, nil)

	stored, err := svc.TogglePayment(context.Background(), TogglePaymentRequest{StudentID: 1, Subject: "Math", Year: 2026, Month: 8})
	require.NoError(t, err)
	assert.True(t, stored.Paid)
	require.NotNil(t, stored.PaymentDate)

	payments.current = &models.PaymentRecord{
		StudentID: 1, Subject: "Math", Year: 2026, Month: 8, Paid: true,
		PaymentDate: stored.PaymentDate, Notes: strPtr("bank transfer"),
	}
	flipped, err := svc.TogglePayment(context.Background(), TogglePaymentRequest{StudentID: 1, Subject: "Math", Year: 2026, Month: 8})
	require.NoError(t, err)
	assert.False(t, flipped.Paid)
	assert.Nil(t, flipped.PaymentDate)
	// Notes survive the flip.
	require.NotNil(t, flipped.Notes)
	assert.Equal(t, "bank transfer", *flipped.Notes)
}

func TestAddSubjectNoOpOnConflict(t *testing.T) {
	pricing := &fakePricingStore{}
	svc := NewBillingService(&fakeRoster{}, &fakePresentCounter{}, pricing, &fakePaymentStore{}, &fakeScheduler{}, nil, nil)

	_, created, err := svc.AddSubject(context.Background(), SubjectRequest{StudentID: 1, Subject: "Math"})
	require.NoError(t, err)
	assert.False(t, created)

	pricing.absent = &models.PricingRecord{StudentID: 1, Subject: "Piano", Currency: models.CurrencyPHP}
	record, created, err := svc.AddSubject(context.Background(), SubjectRequest{StudentID: 1, Subject: "Piano"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Piano", record.Subject)
}

func TestDeleteSubjectCascadesPayments(t *testing.T) {
	pricing := &fakePricingStore{}
	payments := &fakePaymentStore{}
	svc := NewBillingService(&fakeRoster{}, &fakePresentCounter{}, pricing, payments, &fakeScheduler{}, nil, nil)

	_, err := svc.DeleteSubject(context.Background(), SubjectRequest{StudentID: 1, Subject: "Math"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, pricing.deleted)
	assert.Equal(t, []string{"Math"}, payments.cascaded)
}

func TestDeleteSubjectMissingIsNotFound(t *testing.T) {
	pricing := &fakePricingStore{deleteErr: sql.ErrNoRows}
	payments := &fakePaymentStore{}
	svc := NewBillingService(&fakeRoster{}, &fakePresentCounter{}, pricing, payments, &fakeScheduler{}, nil, nil)

	_, err := svc.DeleteSubject(context.Background(), SubjectRequest{StudentID: 1, Subject: "Ghost"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, payments.cascaded)
}

func TestComputeTuitionPropagatesUpstreamError(t *testing.T) {
	roster := &fakeRoster{err: appErrors.ErrUpstream}
	svc := NewBillingService(roster, &fakePresentCounter{}, &fakePricingStore{}, &fakePaymentStore{}, &fakeScheduler{}, nil, nil)

	_, err := svc.ComputeTuition(context.Background(), 2026, 8)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstream))
}
