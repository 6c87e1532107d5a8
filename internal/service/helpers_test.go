package service

import (
	"context"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
)

type fakeScheduler struct {
	students    []scheduler.Student
	assignments []scheduler.Assignment
	occurrences []scheduler.Occurrence
	teachers    []models.Teacher

	studentsErr    error
	assignmentsErr error
	occurrencesErr error
	teachersErr    error
}

func (f *fakeScheduler) ListActiveStudents(ctx context.Context) ([]scheduler.Student, error) {
	return f.students, f.studentsErr
}

func (f *fakeScheduler) ListActiveAssignments(ctx context.Context) ([]scheduler.Assignment, error) {
	return f.assignments, f.assignmentsErr
}

func (f *fakeScheduler) ListAssignmentsInRange(ctx context.Context, startDate string, daysCount int) ([]scheduler.Occurrence, error) {
	return f.occurrences, f.occurrencesErr
}

func (f *fakeScheduler) ListActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	return f.teachers, f.teachersErr
}

type fakeHiddenLister struct {
	rows []models.HiddenRow
	err  error
}

func (f *fakeHiddenLister) List(ctx context.Context) ([]models.HiddenRow, error) {
	return f.rows, f.err
}

type fakePricingStore struct {
	records   []models.PricingRecord
	listErr   error
	upserted  []models.PricingRecord
	deleteErr error
	deleted   []string
	absent    *models.PricingRecord
	absentErr error
}

func (f *fakePricingStore) ListAll(ctx context.Context) ([]models.PricingRecord, error) {
	return f.records, f.listErr
}

func (f *fakePricingStore) Upsert(ctx context.Context, studentID int64, subject string, pricePerClass float64, currency models.Currency) (*models.PricingRecord, error) {
	record := models.PricingRecord{StudentID: studentID, Subject: subject, PricePerClass: pricePerClass, Currency: currency}
	f.upserted = append(f.upserted, record)
	return &record, nil
}

func (f *fakePricingStore) InsertIfAbsent(ctx context.Context, studentID int64, subject string) (*models.PricingRecord, error) {
	return f.absent, f.absentErr
}

func (f *fakePricingStore) Delete(ctx context.Context, studentID int64, subject string) (*models.PricingRecord, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, subject)
	return &models.PricingRecord{StudentID: studentID, Subject: subject}, nil
}

type fakePaymentStore struct {
	records   []models.PaymentRecord
	current   *models.PaymentRecord
	upserted  []models.PaymentRecord
	cascaded  []string
	listErr   error
	getErr    error
	upsertErr error
}

func (f *fakePaymentStore) ListByMonth(ctx context.Context, year, month int) ([]models.PaymentRecord, error) {
	return f.records, f.listErr
}

func (f *fakePaymentStore) Get(ctx context.Context, studentID int64, subject string, year, month int) (*models.PaymentRecord, error) {
	return f.current, f.getErr
}

func (f *fakePaymentStore) Upsert(ctx context.Context, record *models.PaymentRecord) (*models.PaymentRecord, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = append(f.upserted, *record)
	return record, nil
}

func (f *fakePaymentStore) DeleteForSubject(ctx context.Context, studentID int64, subject string) error {
	f.cascaded = append(f.cascaded, subject)
	return nil
}

type fakeRoster struct {
	rows []models.StudentSubjectRow
	err  error
	asOf *models.YearMonth
}

func (f *fakeRoster) Resolve(ctx context.Context, asOf *models.YearMonth) ([]models.StudentSubjectRow, error) {
	f.asOf = asOf
	return f.rows, f.err
}

type fakePresentCounter struct {
	counts map[int64]int
	err    error
}

func (f *fakePresentCounter) PresentCountsByRange(ctx context.Context, from, to string) (map[int64]int, error) {
	return f.counts, f.err
}

func strPtr(s string) *string { return &s }

func i64Ptr(i int64) *int64 { return &i }
