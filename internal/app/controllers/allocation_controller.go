package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/middleware"
)

// AllocationController handles room allocation by admins
type AllocationController struct {
	allocationService *services.AllocationService
}

// NewAllocationController creates a new AllocationController
func NewAllocationController(allocationService *services.AllocationService) *AllocationController {
	return &AllocationController{allocationService: allocationService}
}

// AllocateRoom gives a student a bed in a room
// @Summary Allocate a room
// @Description Creates an active allocation and increments the room's occupancy
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AllocateRoomRequest true "Allocation"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Student or room not found"
// @Failure 409 {object} dto.ErrorResponse "Room full or student already allocated"
// @Router /admin/allocate-room [post]
func (c *AllocationController) AllocateRoom(ctx *gin.Context) {
	var req dto.AllocateRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.allocationService.AllocateRoom(ctx.Request.Context(), req.StudentID, req.RoomID, req.AcademicYear); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Room allocated successfully"))
}

// Deallocate ends a student's active allocation
// @Summary Vacate a room
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeallocateRequest true "Student"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "No active allocation"
// @Router /admin/deallocate [post]
func (c *AllocationController) Deallocate(ctx *gin.Context) {
	var req dto.DeallocateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.allocationService.EndAllocation(ctx.Request.Context(), req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Room vacated successfully"))
}
