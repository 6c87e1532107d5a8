package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/response"
)

type classCountService interface {
	CountRange(ctx context.Context, start, end string, statuses []models.AttendanceStatus, teacherFilter string) (*models.ClassCountReport, error)
}

// ClassCountHandler exposes the teacher-grouped range counts.
type ClassCountHandler struct {
	counts classCountService
}

// NewClassCountHandler builds a new handler.
func NewClassCountHandler(counts classCountService) *ClassCountHandler {
	return &ClassCountHandler{counts: counts}
}

// Counts godoc
// @Summary Class counts grouped by teacher over a date range
// @Tags Attendance
// @Produce json
// @Param start query string true "Start date YYYY-MM-DD"
// @Param end query string true "End date YYYY-MM-DD"
// @Param statuses query string false "Comma-separated status filter"
// @Param teacher query string false "Restrict to one teacher name"
// @Success 200 {object} response.Envelope
// @Router /class-counts [get]
func (h *ClassCountHandler) Counts(c *gin.Context) {
	report, err := h.counts.CountRange(
		c.Request.Context(),
		c.Query("start"),
		c.Query("end"),
		statusesQuery(c),
		c.Query("teacher"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
