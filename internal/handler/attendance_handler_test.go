package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/service"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
)

type rosterServiceMock struct {
	rows     []models.StudentSubjectRow
	err      error
	lastAsOf *models.YearMonth
	called   bool
}

func (m *rosterServiceMock) Resolve(ctx context.Context, asOf *models.YearMonth) ([]models.StudentSubjectRow, error) {
	m.called = true
	m.lastAsOf = asOf
	return m.rows, m.err
}

type attendanceServiceMock struct {
	setResp     *models.AttendanceRecord
	setErr      error
	cycleResp   *models.ToggleResult
	clearResp   *models.AttendanceRecord
	clearErr    error
	monthResp   []models.AttendanceRecord
	summaryResp []models.MonthlySummaryRow
	studentResp *models.StudentSummary
	notesResp   []models.Note
	noteResp    *models.Note
	lastSet     service.SetStatusRequest
	lastClearID int64
}

func (m *attendanceServiceMock) Set(ctx context.Context, req service.SetStatusRequest) (*models.AttendanceRecord, error) {
	m.lastSet = req
	return m.setResp, m.setErr
}

func (m *attendanceServiceMock) Cycle(ctx context.Context, req service.CycleRequest) (*models.ToggleResult, error) {
	return m.cycleResp, nil
}

func (m *attendanceServiceMock) Clear(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error) {
	m.lastClearID = studentID
	return m.clearResp, m.clearErr
}

func (m *attendanceServiceMock) ListMonth(ctx context.Context, year, month int) ([]models.AttendanceRecord, error) {
	return m.monthResp, nil
}

func (m *attendanceServiceMock) StudentSummary(ctx context.Context, studentID int64, year, month int) (*models.StudentSummary, error) {
	return m.studentResp, nil
}

func (m *attendanceServiceMock) MonthlySummary(ctx context.Context, year, month int) ([]models.MonthlySummaryRow, error) {
	return m.summaryResp, nil
}

func (m *attendanceServiceMock) Notes(ctx context.Context, year, month int) ([]models.Note, error) {
	return m.notesResp, nil
}

func (m *attendanceServiceMock) SetNote(ctx context.Context, req service.SetNoteRequest) (*models.Note, error) {
	return m.noteResp, nil
}

func TestAttendanceHandlerStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRoster := &rosterServiceMock{
		rows: []models.StudentSubjectRow{{StudentID: 1, Name: "Alice Reyes", RowKey: "1-Math"}},
	}
	handler := NewAttendanceHandler(mockRoster, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students?year=2026&month=8", nil)
	c.Request = req

	handler.Students(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockRoster.called)
	require.NotNil(t, mockRoster.lastAsOf)
	assert.Equal(t, 2026, mockRoster.lastAsOf.Year)
	assert.Equal(t, 8, mockRoster.lastAsOf.Month)
}

func TestAttendanceHandlerStudentsNoPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRoster := &rosterServiceMock{}
	handler := NewAttendanceHandler(mockRoster, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students", nil)
	c.Request = req

	handler.Students(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockRoster.lastAsOf)
}

func TestAttendanceHandlerStudentsUpstreamDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&rosterServiceMock{err: appErrors.ErrUpstream}, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students", nil)
	c.Request = req

	handler.Students(c)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", envelope.Error.Code)
}

func TestAttendanceHandlerSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{
		setResp: &models.AttendanceRecord{ID: "rec-1", StudentID: 7, Date: "2026-08-03", Status: models.AttendanceStatusPresent},
	}
	handler := NewAttendanceHandler(&rosterServiceMock{}, mockSvc)

	payload, _ := json.Marshal(service.SetStatusRequest{StudentID: 7, Date: "2026-08-03", Status: "present"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Set(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), mockSvc.lastSet.StudentID)
}

func TestAttendanceHandlerSetInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&rosterServiceMock{}, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"student_id": 7`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Set(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandlerClearMissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&rosterServiceMock{}, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/?studentId=7", nil)
	c.Request = req

	handler.Clear(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandlerClearNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{clearErr: appErrors.Clone(appErrors.ErrNotFound, "no attendance record for that day")}
	handler := NewAttendanceHandler(&rosterServiceMock{}, mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/?studentId=7&date=2026-08-03&subject=Math", nil)
	c.Request = req

	handler.Clear(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(7), mockSvc.lastClearID)
}

func TestAttendanceHandlerMonthlyRequiresPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&rosterServiceMock{}, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/monthly?year=2026&month=13", nil)
	c.Request = req

	handler.Monthly(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandlerStudentSummaryBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&rosterServiceMock{}, &attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/summary/abc?year=2026&month=8", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "studentId", Value: "abc"}}

	handler.StudentSummary(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
