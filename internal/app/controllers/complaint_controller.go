package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/middleware"
)

// ComplaintController handles complaints
type ComplaintController struct {
	complaintService *services.ComplaintService
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService *services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: complaintService}
}

// SubmitComplaint files a complaint
// @Summary File a complaint
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ComplaintCreate true "Complaint"
// @Success 201 {object} dto.ComplaintCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid complaint"
// @Failure 403 {object} dto.ErrorResponse "Student is not the caller"
// @Router /student/complaint [post]
func (c *ComplaintController) SubmitComplaint(ctx *gin.Context) {
	var req dto.ComplaintCreate
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if err := middleware.RequireSelfOrAdmin(ctx, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := c.complaintService.SubmitComplaint(ctx.Request.Context(), services.ComplaintInput{
		StudentID:   req.StudentID,
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ComplaintCreatedResponse{Success: true, ComplaintID: id})
}

// ListStudentComplaints lists the student's complaints
// @Summary List my complaints
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {array} models.Complaint
// @Router /student/{id}/complaints [get]
func (c *ComplaintController) ListStudentComplaints(ctx *gin.Context) {
	complaints, err := c.complaintService.ListForStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, complaints)
}

// ListComplaints lists all complaints
// @Summary List complaints
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, In Progress, Resolved or Closed"
// @Param priority query string false "Low, Medium, High or Urgent"
// @Param category query string false "Category"
// @Success 200 {array} models.ComplaintView
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /admin/complaints [get]
func (c *ComplaintController) ListComplaints(ctx *gin.Context) {
	complaints, err := c.complaintService.List(ctx.Request.Context(),
		ctx.Query("status"), ctx.Query("priority"), ctx.Query("category"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, complaints)
}

// UpdateComplaintStatus changes a complaint's status
// @Summary Update complaint status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ComplaintStatusUpdate true "Status update"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Router /admin/complaint/update [post]
func (c *ComplaintController) UpdateComplaintStatus(ctx *gin.Context) {
	var req dto.ComplaintStatusUpdate
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.complaintService.UpdateComplaintStatus(ctx.Request.Context(), req.ComplaintID, req.Status, req.AdminResponse); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Complaint status updated successfully"))
}
