package handlers

import (
	"errors"
	"net/http"

	"harborview/models"
	"harborview/services/booking"
	"harborview/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard to the guest-facing UI.
type WizardHandler struct {
	Service booking.WizardService
	Logger  *zap.Logger
}

func NewWizardHandler(service booking.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{Service: service, Logger: logger}
}

// StartWizard mounts a new wizard for a target room or category.
func (h *WizardHandler) StartWizard(c *gin.Context) {
	var req booking.StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Service.StartWizard(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, booking.ErrNoCandidates) {
			utils.JSONError(c, http.StatusNotFound, "no rooms available", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to start booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetWizard returns the current wizard state.
func (h *WizardHandler) GetWizard(c *gin.Context) {
	view, err := h.Service.GetWizard(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateBookingData applies a partial draft update.
func (h *WizardHandler) UpdateBookingData(c *gin.Context) {
	var update models.DraftUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Service.UpdateBookingData(c.Request.Context(), c.Param("draftID"), update)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Next advances the wizard one step when the current step is valid.
func (h *WizardHandler) Next(c *gin.Context) {
	view, err := h.Service.Next(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Back returns to the previous step.
func (h *WizardHandler) Back(c *gin.Context) {
	view, err := h.Service.Back(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// JumpTo moves directly to a reachable step.
func (h *WizardHandler) JumpTo(c *gin.Context) {
	var input struct {
		Step models.WizardStep `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Service.JumpTo(c.Request.Context(), c.Param("draftID"), input.Step)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit runs the payment orchestration. Payment failures come back as a
// normal view with the step-scoped error set; only infrastructure
// problems map to error statuses.
func (h *WizardHandler) Submit(c *gin.Context) {
	var card models.CardDetails
	if err := c.ShouldBindJSON(&card); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Service.Submit(c.Request.Context(), c.Param("draftID"), card)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) renderError(c *gin.Context, err error) {
	var valErr *booking.ValidationError

	switch {
	case errors.Is(err, booking.ErrDraftNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking draft not found or expired", err.Error())
	case errors.Is(err, booking.ErrSubmissionInFlight):
		utils.JSONError(c, http.StatusConflict, "a submission is already in progress", err.Error())
	case errors.Is(err, models.ErrDraftCompleted):
		utils.JSONError(c, http.StatusConflict, "booking is already completed", err.Error())
	case errors.Is(err, models.ErrRoomLocked):
		utils.JSONError(c, http.StatusConflict, "room selection cannot be changed", err.Error())
	case errors.As(err, &valErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid booking data", valErr.Message)
	default:
		h.Logger.Error("wizard request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
	}
}
