package handlers

import (
	"errors"
	"net/http"

	roomRepo "harborview/database/repository/room"
	"harborview/models"
	"harborview/services/booking"
	"harborview/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the summary page's pre-booking resolution.
type AvailabilityHandler struct {
	Rooms    roomRepo.RoomRepository
	Resolver *booking.AvailabilityResolver
}

func NewAvailabilityHandler(rooms roomRepo.RoomRepository, resolver *booking.AvailabilityResolver) *AvailabilityHandler {
	return &AvailabilityHandler{Rooms: rooms, Resolver: resolver}
}

// Resolve picks a bookable unit for the requested category and dates.
// The result always carries a room; warnings are non-blocking banners.
func (h *AvailabilityHandler) Resolve(c *gin.Context) {
	category := c.Query("category")
	dr := models.DateRange{
		CheckIn:  c.Query("checkIn"),
		CheckOut: c.Query("checkOut"),
	}
	if dr.CheckIn == "" || dr.CheckOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "checkIn and checkOut are required")
		return
	}

	candidates, err := h.Rooms.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms", err.Error())
		return
	}

	result, err := h.Resolver.Resolve(c.Request.Context(), candidates, category, dr)
	if err != nil {
		if errors.Is(err, booking.ErrNoCandidates) {
			utils.JSONError(c, http.StatusNotFound, "no rooms available", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}
