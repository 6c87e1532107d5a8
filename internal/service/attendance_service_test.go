package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type attendanceStoreStub struct {
	found      *models.AttendanceRecord
	findErr    error
	upserted   []models.AttendanceRecord
	deleted    []string
	deleteErr  error
	listed     []models.AttendanceRecord
	count      int
	summary    *models.StudentSummary
	monthRows  []models.MonthlySummaryRow
	rangeFrom  string
	rangeTo    string
	statusArgs []models.AttendanceStatus
}

func (s *attendanceStoreStub) Find(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error) {
	if s.found == nil && s.findErr == nil {
		return nil, sql.ErrNoRows
	}
	return s.found, s.findErr
}

func (s *attendanceStoreStub) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	s.upserted = append(s.upserted, *record)
	return record, nil
}

func (s *attendanceStoreStub) Delete(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error) {
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	s.deleted = append(s.deleted, date)
	return &models.AttendanceRecord{StudentID: studentID, Subject: subject, Date: date}, nil
}

func (s *attendanceStoreStub) ListByDateRange(ctx context.Context, from, to string) ([]models.AttendanceRecord, error) {
	s.rangeFrom, s.rangeTo = from, to
	return s.listed, nil
}

func (s *attendanceStoreStub) CountByStatus(ctx context.Context, studentID int64, subject models.Subject, from, to string, statuses []models.AttendanceStatus) (int, error) {
	s.statusArgs = statuses
	return s.count, nil
}

func (s *attendanceStoreStub) StudentSummary(ctx context.Context, studentID int64, from, to string) (*models.StudentSummary, error) {
	return s.summary, nil
}

func (s *attendanceStoreStub) MonthlySummaryCounts(ctx context.Context, from, to string) ([]models.MonthlySummaryRow, error) {
	return s.monthRows, nil
}

type noteStoreStub struct {
	notes    []models.Note
	upserted []models.Note
}

func (s *noteStoreStub) ListByMonth(ctx context.Context, year, month int) ([]models.Note, error) {
	return s.notes, nil
}

func (s *noteStoreStub) Upsert(ctx context.Context, note *models.Note) (*models.Note, error) {
	s.upserted = append(s.upserted, *note)
	return note, nil
}

func newAttendanceService(store *attendanceStoreStub, notes *noteStoreStub, sched *fakeScheduler) *AttendanceService {
	if notes == nil {
		notes = &noteStoreStub{}
	}
	if sched == nil {
		sched = &fakeScheduler{}
	}
	return NewAttendanceService(store, notes, sched, nil, nil)
}

func TestAttendanceSetRejectsNoShow(t *testing.T) {
	svc := newAttendanceService(&attendanceStoreStub{}, nil, nil)

	_, err := svc.Set(context.Background(), SetStatusRequest{
		StudentID: 1, Date: "2026-08-03", Status: "noshow",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceSetRejectsUnknownStatus(t *testing.T) {
	svc := newAttendanceService(&attendanceStoreStub{}, nil, nil)

	_, err := svc.Set(context.Background(), SetStatusRequest{
		StudentID: 1, Date: "2026-08-03", Status: "late",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceSetUpserts(t *testing.T) {
	store := &attendanceStoreStub{}
	svc := newAttendanceService(store, nil, nil)

	stored, err := svc.Set(context.Background(), SetStatusRequest{
		StudentID: 1, Date: "2026-08-03", Subject: strPtr("Math"), Status: "present",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, stored.Status)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, "Math", store.upserted[0].Subject.Name)
}

func TestAttendanceSetEmptySubjectMeansNull(t *testing.T) {
	store := &attendanceStoreStub{}
	svc := newAttendanceService(store, nil, nil)

	_, err := svc.Set(context.Background(), SetStatusRequest{
		StudentID: 1, Date: "2026-08-03", Subject: strPtr(""), Status: "absent",
	})
	require.NoError(t, err)
	require.Len(t, store.upserted, 1)
	assert.False(t, store.upserted[0].Subject.Valid)
}

func TestAttendanceCycleFromEmptyCreatesPresent(t *testing.T) {
	store := &attendanceStoreStub{}
	svc := newAttendanceService(store, nil, nil)

	result, err := svc.Cycle(context.Background(), CycleRequest{StudentID: 1, Date: "2026-08-03"})
	require.NoError(t, err)
	require.NotNil(t, result.Status)
	assert.Equal(t, models.AttendanceStatusPresent, *result.Status)
	require.Len(t, store.upserted, 1)
}

func TestAttendanceCycleAdvances(t *testing.T) {
	store := &attendanceStoreStub{
		found: &models.AttendanceRecord{StudentID: 1, Date: "2026-08-03", Status: models.AttendanceStatusTA},
	}
	svc := newAttendanceService(store, nil, nil)

	result, err := svc.Cycle(context.Background(), CycleRequest{StudentID: 1, Date: "2026-08-03"})
	require.NoError(t, err)
	require.NotNil(t, result.Status)
	assert.Equal(t, models.AttendanceStatusNoShow, *result.Status)
}

func TestAttendanceCycleFromNoShowClears(t *testing.T) {
	store := &attendanceStoreStub{
		found: &models.AttendanceRecord{StudentID: 1, Date: "2026-08-03", Status: models.AttendanceStatusNoShow},
	}
	svc := newAttendanceService(store, nil, nil)

	result, err := svc.Cycle(context.Background(), CycleRequest{StudentID: 1, Date: "2026-08-03"})
	require.NoError(t, err)
	assert.Nil(t, result.Status)
	assert.Nil(t, result.Record)
	require.Len(t, store.deleted, 1)
}

func TestAttendanceClearMissingIsNotFound(t *testing.T) {
	store := &attendanceStoreStub{deleteErr: sql.ErrNoRows}
	svc := newAttendanceService(store, nil, nil)

	_, err := svc.Clear(context.Background(), 1, models.NoSubject(), "2026-08-03")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestAttendanceCountByStatusValidates(t *testing.T) {
	svc := newAttendanceService(&attendanceStoreStub{}, nil, nil)

	_, err := svc.CountByStatus(context.Background(), 1, models.NoSubject(), "2026-08-01", "2026-08-31", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.CountByStatus(context.Background(), 1, models.NoSubject(), "2026-08-01", "2026-08-31",
		[]models.AttendanceStatus{"late"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceListMonthUsesMonthBounds(t *testing.T) {
	store := &attendanceStoreStub{}
	svc := newAttendanceService(store, nil, nil)

	_, err := svc.ListMonth(context.Background(), 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", store.rangeFrom)
	assert.Equal(t, "2026-02-28", store.rangeTo)
}

func TestAttendanceMonthlySummaryResolvesNames(t *testing.T) {
	store := &attendanceStoreStub{monthRows: []models.MonthlySummaryRow{
		{StudentID: 2, PresentCount: 4, AbsentCount: 1},
		{StudentID: 1, PresentCount: 7},
	}}
	sched := &fakeScheduler{students: []scheduler.Student{
		{ID: 1, Name: "Alice", Active: true},
		{ID: 2, Name: "Ben [벤]", Active: true},
	}}
	svc := newAttendanceService(store, nil, sched)

	rows, err := svc.MonthlySummary(context.Background(), 2026, 8)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "Ben", rows[1].Name)
	assert.Equal(t, 4, rows[1].PresentCount)
}

func TestAttendanceSetNote(t *testing.T) {
	notes := &noteStoreStub{}
	svc := newAttendanceService(&attendanceStoreStub{}, notes, nil)

	stored, err := svc.SetNote(context.Background(), SetNoteRequest{
		StudentID: 1, Year: 2026, Month: 8, Subject: strPtr("Math"), Notes: "makeup Friday",
	})
	require.NoError(t, err)
	assert.Equal(t, "makeup Friday", stored.Notes)
	require.Len(t, notes.upserted, 1)
	assert.Equal(t, "Math", notes.upserted[0].Subject.Name)
}
