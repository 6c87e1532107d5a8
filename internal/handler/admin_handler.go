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

type holidayService interface {
	List(ctx context.Context) ([]models.Holiday, error)
	ListMonth(ctx context.Context, year, month int) ([]models.Holiday, error)
	Add(ctx context.Context, req service.AddHolidayRequest) (*models.Holiday, error)
	Remove(ctx context.Context, id string) (*models.Holiday, error)
}

type verifyBody struct {
	Password string `json:"password"`
}

type addHolidayBody struct {
	Password string `json:"password"`
	service.AddHolidayRequest
}

type deleteHolidayBody struct {
	Password string `json:"password"`
}

// AdminHandler exposes the admin verification and holiday endpoints.
type AdminHandler struct {
	holidays holidayService
	guard    *auth.Guard
}

// NewAdminHandler builds a new handler.
func NewAdminHandler(holidays holidayService, guard *auth.Guard) *AdminHandler {
	return &AdminHandler{holidays: holidays, guard: guard}
}

// Verify godoc
// @Summary Check the shared admin password
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body verifyBody true "Password payload"
// @Success 200 {object} response.Envelope
// @Router /admin/verify [post]
func (h *AdminHandler) Verify(c *gin.Context) {
	var body verifyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid password payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"valid": true})
}

// Holidays godoc
// @Summary List every holiday
// @Tags Holidays
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *AdminHandler) Holidays(c *gin.Context) {
	holidays, err := h.holidays.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holidays)
}

// MonthlyHolidays godoc
// @Summary List one month's holidays
// @Tags Holidays
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} response.Envelope
// @Router /holidays/monthly [get]
func (h *AdminHandler) MonthlyHolidays(c *gin.Context) {
	year, month, err := yearMonthQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	holidays, err := h.holidays.ListMonth(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holidays)
}

// AddHoliday godoc
// @Summary Register a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body addHolidayBody true "Holiday payload with admin password"
// @Success 201 {object} response.Envelope
// @Router /holidays [post]
func (h *AdminHandler) AddHoliday(c *gin.Context) {
	var body addHolidayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid holiday payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	holiday, err := h.holidays.Add(c.Request.Context(), body.AddHolidayRequest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, holiday)
}

// DeleteHoliday godoc
// @Summary Remove a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param id path string true "Holiday id"
// @Param payload body deleteHolidayBody true "Admin password"
// @Success 200 {object} response.Envelope
// @Router /holidays/{id} [delete]
func (h *AdminHandler) DeleteHoliday(c *gin.Context) {
	var body deleteHolidayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid password payload"))
		return
	}
	if err := h.guard.Verify(body.Password); err != nil {
		response.Error(c, err)
		return
	}
	removed, err := h.holidays.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, removed)
}
