package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/service"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/auth"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/response"
)

type commissionService interface {
	ComputeCommissions(ctx context.Context, year, month int) ([]models.CommissionRow, error)
	SummarizeCommissions(ctx context.Context, year, month int) (*models.CommissionSummary, error)
	SetCommission(ctx context.Context, req service.SetCommissionRequest) (*models.CommissionRecord, error)
	ToggleTeacherPayment(ctx context.Context, req service.ToggleTeacherPaymentRequest) (*models.TeacherPaymentRecord, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
}

type setCommissionBody struct {
	Password string `json:"password"`
	service.SetCommissionRequest
}

type toggleTeacherPaymentBody struct {
	Password string `json:"password"`
	service.ToggleTeacherPaymentRequest
}

// CommissionHandler exposes the teacher commission surface.
type CommissionHandler struct {
	commission commissionService
	exports    exportService
	guard      *auth.Guard
}

// NewCommissionHandler builds a new handler.
func NewCommissionHandler(commission commissionService, exports exportService, guard *auth.Guard) *CommissionHandler {
	return &CommissionHandler{commission: commission, exports: exports, guard: guard}
}

// List godoc
// @Summary Monthly commission rows per primary teacher and student
// @Tags Commission
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /commission [get]
func (h *CommissionHandler) List(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.commission.ComputeCommissions(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Summary godoc
// @Summary Monthly commission totals grouped by currency
// @Tags Commission
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /commission/summary [get]
func (h *CommissionHandler) Summary(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.commission.SummarizeCommissions(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Export godoc
// @Summary Download the month's commission table
// @Tags Commission
// @Produce octet-stream
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /commission/export [get]
func (h *CommissionHandler) Export(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Commission(c.Request.Context(), year, month, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Set godoc
// @Summary Set a teacher-student commission rate
// @Tags Commission
// @Accept json
// @Produce json
// @Param payload body setCommissionBody true "Commission payload with admin password"
// @Success 200 {object} response.Envelope
// @Router /commission [post]
func (h *CommissionHandler) Set(c *gin.Context) {
	var body setCommissionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid commission payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.commission.SetCommission(c.Request.Context(), body.SetCommissionRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// TogglePayment godoc
// @Summary Flip a month's commission payout state
// @Tags Commission
// @Accept json
// @Produce json
// @Param payload body toggleTeacherPaymentBody true "Payout payload with admin password"
// @Success 200 {object} response.Envelope
// @Router /commission/payment/toggle [post]
func (h *CommissionHandler) TogglePayment(c *gin.Context) {
	var body toggleTeacherPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payout payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.commission.ToggleTeacherPayment(c.Request.Context(), body.ToggleTeacherPaymentRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Teachers godoc
// @Summary Active teachers sorted by name
// @Tags Commission
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /commission/teachers [get]
func (h *CommissionHandler) Teachers(c *gin.Context) {
	teachers, err := h.commission.ListTeachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}
