package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanbit-edu/tutoring-ledger-api/internal/models"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/service"
	appErrors "github.com/hanbit-edu/tutoring-ledger-api/pkg/errors"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/response"
)

type hiddenRowService interface {
	List(ctx context.Context) ([]models.HiddenRowView, error)
	Hide(ctx context.Context, req service.HideRowRequest) (*models.HiddenRow, error)
	Unhide(ctx context.Context, req service.UnhideRowRequest) (*models.HiddenRow, error)
}

// HiddenHandler exposes the hidden-row endpoints. Hiding and unhiding need no
// admin password, matching the original surface.
type HiddenHandler struct {
	hidden hiddenRowService
}

// NewHiddenHandler builds a new handler.
func NewHiddenHandler(hidden hiddenRowService) *HiddenHandler {
	return &HiddenHandler{hidden: hidden}
}

// List godoc
// @Summary List hidden roster rows with resolved names
// @Tags Hidden
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /hidden [get]
func (h *HiddenHandler) List(c *gin.Context) {
	views, err := h.hidden.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views)
}

// Hide godoc
// @Summary Hide a roster row from a month onward
// @Tags Hidden
// @Accept json
// @Produce json
// @Param payload body service.HideRowRequest true "Hide payload"
// @Success 200 {object} response.Envelope
// @Router /hidden [post]
func (h *HiddenHandler) Hide(c *gin.Context) {
	var req service.HideRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hide payload"))
		return
	}
	row, err := h.hidden.Hide(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row)
}

// Unhide godoc
// @Summary Restore a hidden roster row
// @Tags Hidden
// @Accept json
// @Produce json
// @Param payload body service.UnhideRowRequest true "Unhide payload"
// @Success 200 {object} response.Envelope
// @Router /hidden [delete]
func (h *HiddenHandler) Unhide(c *gin.Context) {
	var req service.UnhideRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unhide payload"))
		return
	}
	row, err := h.hidden.Unhide(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, row)
}
