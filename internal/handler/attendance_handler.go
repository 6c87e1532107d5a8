package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/service"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/response"
)

type rosterService interface {
	Resolve(ctx context.Context, asOf *models.YearMonth) ([]models.StudentSubjectRow, error)
}

type attendanceService interface {
	Set(ctx context.Context, req service.SetStatusRequest) (*models.AttendanceRecord, error)
	Cycle(ctx context.Context, req service.CycleRequest) (*models.ToggleResult, error)
	Clear(ctx context.Context, studentID int64, subject models.Subject, date string) (*models.AttendanceRecord, error)
	ListMonth(ctx context.Context, year, month int) ([]models.AttendanceRecord, error)
	StudentSummary(ctx context.Context, studentID int64, year, month int) (*models.StudentSummary, error)
	MonthlySummary(ctx context.Context, year, month int) ([]models.MonthlySummaryRow, error)
	Notes(ctx context.Context, year, month int) ([]models.Note, error)
	SetNote(ctx context.Context, req service.SetNoteRequest) (*models.Note, error)
}

// AttendanceHandler exposes the roster and attendance ledger endpoints.
type AttendanceHandler struct {
	roster     rosterService
	attendance attendanceService
}

// NewAttendanceHandler builds a new handler.
func NewAttendanceHandler(roster rosterService, attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{roster: roster, attendance: attendance}
}

// Students godoc
// @Summary List the resolved student-subject roster
// @Tags Attendance
// @Produce json
// @Param year query int false "Billing year for the hide window"
// @Param month query int false "Billing month for the hide window"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *AttendanceHandler) Students(c *gin.Context) {
	asOf, err := yearMonthQueryOptional(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.roster.Resolve(c.Request.Context(), asOf)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Monthly godoc
// @Summary List every attendance record of a month
// @Tags Attendance
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /monthly [get]
func (h *AttendanceHandler) Monthly(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.attendance.ListMonth(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Set godoc
// @Summary Mark a cell present, absent or ta
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SetStatusRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router / [post]
func (h *AttendanceHandler) Set(c *gin.Context) {
	var req service.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.Set(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Toggle godoc
// @Summary Advance a cell through the status cycle
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.CycleRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Router /toggle [post]
func (h *AttendanceHandler) Toggle(c *gin.Context) {
	var req service.CycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	result, err := h.attendance.Cycle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Clear godoc
// @Summary Remove a cell's attendance record
// @Tags Attendance
// @Produce json
// @Param studentId query int true "Student id"
// @Param date query string true "Date YYYY-MM-DD"
// @Param subject query string false "Subject, empty for the subject-less row"
// @Success 200 {object} response.Envelope
// @Router / [delete]
func (h *AttendanceHandler) Clear(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Query("studentId"), 10, 64)
	date := c.Query("date")
	if err != nil || date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId and date query params are required"))
		return
	}
	removed, err := h.attendance.Clear(c.Request.Context(), studentID, subjectQuery(c), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, removed)
}

// Summary godoc
// @Summary Per-student present/absent counts for a month
// @Tags Attendance
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.attendance.MonthlySummary(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// StudentSummary godoc
// @Summary One student's attendance counts for a month
// @Tags Attendance
// @Produce json
// @Param studentId path int true "Student id"
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /summary/{studentId} [get]
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId must be numeric"))
		return
	}
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.attendance.StudentSummary(c.Request.Context(), studentID, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Notes godoc
// @Summary List the month's cell notes
// @Tags Attendance
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /notes [get]
func (h *AttendanceHandler) Notes(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	notes, err := h.attendance.Notes(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// SetNote godoc
// @Summary Upsert a month cell's note
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SetNoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Router /notes [post]
func (h *AttendanceHandler) SetNote(c *gin.Context) {
	var req service.SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid note payload"))
		return
	}
	note, err := h.attendance.SetNote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note)
}
