package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/middleware"
)

// SwapController handles room swap requests
type SwapController struct {
	swapService *services.SwapService
}

// NewSwapController creates a new SwapController
func NewSwapController(swapService *services.SwapService) *SwapController {
	return &SwapController{swapService: swapService}
}

// SubmitSwapRequest files a swap request on behalf of the requester
// @Summary Request a room swap
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SwapRequestCreate true "Swap request"
// @Success 201 {object} dto.SwapCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request or missing allocations"
// @Failure 403 {object} dto.ErrorResponse "Requester is not the caller"
// @Router /student/swap-request [post]
func (c *SwapController) SubmitSwapRequest(ctx *gin.Context) {
	var req dto.SwapRequestCreate
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := middleware.RequireSelfOrAdmin(ctx, req.RequesterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := c.swapService.SubmitSwapRequest(ctx.Request.Context(), req.RequesterID, req.TargetID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SwapCreatedResponse{Success: true, SwapID: id})
}

// ListStudentSwapRequests lists swaps the student is part of
// @Summary List my swap requests
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {array} models.SwapRequestView
// @Router /student/{id}/swap-requests [get]
func (c *SwapController) ListStudentSwapRequests(ctx *gin.Context) {
	swaps, err := c.swapService.ListForStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, swaps)
}

// ListSwapRequests lists all swap requests
// @Summary List swap requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, Approved or Rejected"
// @Success 200 {array} models.SwapRequestView
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Router /admin/swap-requests [get]
func (c *SwapController) ListSwapRequests(ctx *gin.Context) {
	swaps, err := c.swapService.List(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, swaps)
}

// ApproveSwap exchanges the two students' rooms
// @Summary Approve a swap
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApproveSwapRequest true "Swap"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Swap not found"
// @Failure 409 {object} dto.ErrorResponse "Already resolved or stale"
// @Router /admin/swap/approve [post]
func (c *SwapController) ApproveSwap(ctx *gin.Context) {
	var req dto.ApproveSwapRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	if err := c.swapService.ApproveSwap(ctx.Request.Context(), req.SwapID, principal.Username); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Swap request approved successfully"))
}

// RejectSwap declines a swap request
// @Summary Reject a swap
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RejectSwapRequest true "Swap"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Swap not found"
// @Failure 409 {object} dto.ErrorResponse "Already resolved"
// @Router /admin/swap/reject [post]
func (c *SwapController) RejectSwap(ctx *gin.Context) {
	var req dto.RejectSwapRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	principal, _ := middleware.GetPrincipal(ctx)
	if err := c.swapService.RejectSwap(ctx.Request.Context(), req.SwapID, principal.Username, req.Remarks); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Swap request rejected"))
}
