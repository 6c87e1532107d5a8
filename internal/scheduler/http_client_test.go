package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-edu/tutoring-ledger-api/pkg/config"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewHTTPClient(config.SchedulerConfig{BaseURL: server.URL, Timeout: time.Second}, nil)
}

func TestListActiveStudents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/students/all-active", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "Alice Reyes", "is_active": true}, {"id": 2, "name": "김지혜 (Kim Jihye)", "korean_name": "김지혜", "is_active": true}]`))
	})

	students, err := client.ListActiveStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, int64(1), students[0].ID)
	assert.Equal(t, "Alice Reyes", students[0].Name)
	require.NotNil(t, students[1].LocalizedName)
	assert.Equal(t, "김지혜", *students[1].LocalizedName)
}

func TestListActiveAssignments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assignments/active", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"student_id": 1, "subject": "Math", "teacher_id": 10, "teacher_name": "Cruz", "start_time": "07:00", "end_time": "08:00", "weekdays": [1, 3, 5], "is_active": true}]`))
	})

	assignments, err := client.ListActiveAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, int64(1), assignments[0].StudentID)
	assert.True(t, assignments[0].Subject.Valid)
	assert.Equal(t, "Math", assignments[0].Subject.Name)
	assert.Equal(t, []int{1, 3, 5}, assignments[0].Weekdays)
	assert.Equal(t, "07:00", assignments[0].StartTime)
}

func TestListAssignmentsInRangeSendsParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assignments/date-range", r.URL.Path)
		require.Equal(t, "2026-08-01", r.URL.Query().Get("startDate"))
		require.Equal(t, "31", r.URL.Query().Get("daysCount"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date": "2026-08-03", "is_active": true, "students": [{"id": 1, "name": "Alice Reyes"}], "teachers": [{"id": 10, "name": "Cruz"}]}]`))
	})

	occurrences, err := client.ListAssignmentsInRange(context.Background(), "2026-08-01", 31)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "2026-08-03", occurrences[0].Date)
	require.Len(t, occurrences[0].Teachers, 1)
	assert.Equal(t, "Cruz", occurrences[0].Teachers[0].Name)
}

func TestSchedulerNonOKStatusIsUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListActiveStudents(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstream))
	assert.Equal(t, http.StatusBadGateway, appErrors.FromError(err).Status)
}

func TestSchedulerMalformedBodyIsUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not": "a list"`))
	})

	_, err := client.ListActiveTeachers(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstream))
}

func TestSchedulerUnreachableIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewHTTPClient(config.SchedulerConfig{BaseURL: server.URL, Timeout: time.Second}, nil)

	_, err := client.ListActiveAssignments(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstream))
}
