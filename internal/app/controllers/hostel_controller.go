package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/middleware"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

// HostelController serves hostel and room listings
type HostelController struct {
	hostelService *services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService *services.HostelService) *HostelController {
	return &HostelController{hostelService: hostelService}
}

// ListHostels lists hostels with occupancy totals
// @Summary List hostels
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.HostelSummary
// @Router /admin/hostels [get]
func (c *HostelController) ListHostels(ctx *gin.Context) {
	hostels, err := c.hostelService.ListHostels(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, hostels)
}

// ListRooms lists the rooms of one hostel
// @Summary List rooms of a hostel
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hostel ID"
// @Success 200 {array} models.RoomView
// @Failure 400 {object} dto.ErrorResponse "Invalid hostel ID"
// @Router /admin/hostel/{id}/rooms [get]
func (c *HostelController) ListRooms(ctx *gin.Context) {
	hostelID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("hostel id must be a positive integer"))
		return
	}

	rooms, err := c.hostelService.ListRooms(ctx.Request.Context(), hostelID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rooms)
}

// ListAvailableRooms lists rooms with free beds
// @Summary List available rooms
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.RoomView
// @Router /admin/rooms/available [get]
func (c *HostelController) ListAvailableRooms(ctx *gin.Context) {
	rooms, err := c.hostelService.ListAvailableRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rooms)
}
