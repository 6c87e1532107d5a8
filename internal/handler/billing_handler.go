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

type billingService interface {
	ComputeTuition(ctx context.Context, year, month int) ([]models.BillingRow, error)
	SummarizeTuition(ctx context.Context, year, month int) (*models.BillingSummary, error)
	SetPrice(ctx context.Context, req service.SetPriceRequest) (*models.PricingRecord, error)
	TogglePayment(ctx context.Context, req service.TogglePaymentRequest) (*models.PaymentRecord, error)
	AddSubject(ctx context.Context, req service.SubjectRequest) (*models.PricingRecord, bool, error)
	DeleteSubject(ctx context.Context, req service.SubjectRequest) (*models.PricingRecord, error)
	ListSubjects(ctx context.Context) ([]string, error)
}

type exportService interface {
	Tuition(ctx context.Context, year, month int, format string) (*service.ExportFile, error)
	Commission(ctx context.Context, year, month int, format string) (*service.ExportFile, error)
}

// Admin-gated payloads wrap the service request with the shared secret.

type setPriceBody struct {
	Password string `json:"password"`
	service.SetPriceRequest
}

type togglePaymentBody struct {
	Password string `json:"password"`
	service.TogglePaymentRequest
}

type subjectBody struct {
	Password string `json:"password"`
	service.SubjectRequest
}

// BillingHandler exposes the tuition surface.
type BillingHandler struct {
	billing billingService
	exports exportService
	guard   *auth.Guard
}

// NewBillingHandler builds a new handler.
func NewBillingHandler(billing billingService, exports exportService, guard *auth.Guard) *BillingHandler {
	return &BillingHandler{billing: billing, exports: exports, guard: guard}
}

// Tuition godoc
// @Summary Monthly tuition rows per student-subject
// @Tags Tuition
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /tuition/subjects [get]
func (h *BillingHandler) Tuition(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.billing.ComputeTuition(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Summary godoc
// @Summary Monthly tuition totals grouped by currency
// @Tags Tuition
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /tuition/subjects/summary [get]
func (h *BillingHandler) Summary(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.billing.SummarizeTuition(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Export godoc
// @Summary Download the month's tuition table
// @Tags Tuition
// @Produce octet-stream
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /tuition/subjects/export [get]
func (h *BillingHandler) Export(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Tuition(c.Request.Context(), year, month, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// SetPrice godoc
// @Summary Set a student-subject tuition rate
// @Tags Tuition
// @Accept json
// @Produce json
// @Param payload body setPriceBody true "Pricing payload with admin password"
// @Success 200 {object} response.Envelope
// @Router /tuition/subjects [post]
func (h *BillingHandler) SetPrice(c *gin.Context) {
	var body setPriceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pricing payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.billing.SetPrice(c.Request.Context(), body.SetPriceRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// TogglePayment godoc
// @Summary Flip a month's tuition payment state
// @Tags Tuition
// @Accept json
// @Produce json
// @Param payload body togglePaymentBody true "Payment payload with admin password"
// @Success 200 {object} response.Envelope
// @Router /tuition/subjects/payment/toggle [post]
func (h *BillingHandler) TogglePayment(c *gin.Context) {
	var body togglePaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.billing.TogglePayment(c.Request.Context(), body.TogglePaymentRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// AddSubject godoc
// @Summary Register a student-subject pair for billing
// @Tags Tuition
// @Accept json
// @Produce json
// @Param payload body subjectBody true "Subject payload with admin password"
// @Success 200 {object} response.Envelope
// @Router /tuition/subjects/add [post]
func (h *BillingHandler) AddSubject(c *gin.Context) {
	var body subjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	record, created, err := h.billing.AddSubject(c.Request.Context(), body.SubjectRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"record": record, "created": created})
}

// DeleteSubject godoc
// @Summary Remove a student-subject pair and its payment history
// @Tags Tuition
// @Accept json
// @Produce json
// @Param payload body subjectBody true "Subject payload with admin password"
// @Success 200 {object} response.Envelope
// @Router /tuition/subjects [delete]
func (h *BillingHandler) DeleteSubject(c *gin.Context) {
	var body subjectBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	removed, err := h.billing.DeleteSubject(c.Request.Context(), body.SubjectRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, removed)
}

// Subjects godoc
// @Summary Distinct subjects on live assignments
// @Tags Tuition
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *BillingHandler) Subjects(c *gin.Context) {
	subjects, err := h.billing.ListSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}
