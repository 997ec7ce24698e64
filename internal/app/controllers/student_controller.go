package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/services"
	"github.com/yigit/hostelcare/internal/middleware"
)

// StudentController serves student records and the student's own room views
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// GetRoomDetails returns the student's current room and roommates
// @Summary Get room details
// @Description Returns the student's active room with hostel and roommates, or allocated=false
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.RoomLookupResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not your record"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id}/room [get]
func (c *StudentController) GetRoomDetails(ctx *gin.Context) {
	resp, err := c.studentService.GetRoomDetails(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListSwapTargets lists students the caller could swap rooms with
// @Summary List swap targets
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {array} models.SwapTarget
// @Failure 403 {object} dto.ErrorResponse "Not your record"
// @Router /student/{id}/swap-targets [get]
func (c *StudentController) ListSwapTargets(ctx *gin.Context) {
	targets, err := c.studentService.ListSwapTargets(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, targets)
}

// ListStudents lists all students with their current allocation
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.StudentOverview
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Router /admin/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// AddStudent registers a new student
// @Summary Add a student
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddStudentRequest true "Student information"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 409 {object} dto.ErrorResponse "Student ID or email already exists"
// @Router /admin/student/add [post]
func (c *StudentController) AddStudent(ctx *gin.Context) {
	var req dto.AddStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if _, err := c.studentService.AddStudent(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Student added successfully"))
}
