package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/controllers"
	"github.com/yigit/hostelcare/internal/middleware"
	"github.com/yigit/hostelcare/internal/pkg/auth"
)

// Controllers groups every controller the router wires
type Controllers struct {
	Auth       *controllers.AuthController
	Student    *controllers.StudentController
	Allocation *controllers.AllocationController
	Swap       *controllers.SwapController
	Complaint  *controllers.ComplaintController
	Hostel     *controllers.HostelController
	Dashboard  *controllers.DashboardController
}

// SetupRouter configures all application routes under basePath
func SetupRouter(
	router *gin.Engine,
	basePath string,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginThrottle gin.HandlerFunc,
) {
	middleware.RegisterValidation()

	api := router.Group(basePath)

	api.GET("/health", ctrl.Dashboard.Health)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// --- Public login routes ---
	api.POST("/student/login", loginThrottle, ctrl.Auth.StudentLogin)
	api.POST("/admin/login", loginThrottle, ctrl.Auth.AdminLogin)

	// --- Student routes ---
	// Admins may read any student's records; students only their own.
	student := api.Group("/student")
	student.Use(authMiddleware.JWTAuth())
	{
		self := student.Group("/:id")
		self.Use(authMiddleware.StudentSelfOrAdmin("id"))
		{
			self.GET("/room", ctrl.Student.GetRoomDetails)
			self.GET("/swap-targets", ctrl.Student.ListSwapTargets)
			self.GET("/swap-requests", ctrl.Swap.ListStudentSwapRequests)
			self.GET("/complaints", ctrl.Complaint.ListStudentComplaints)
		}

		// Ownership of the body's student id is checked in the controller
		student.POST("/swap-request", ctrl.Swap.SubmitSwapRequest)
		student.POST("/complaint", ctrl.Complaint.SubmitComplaint)
	}

	// --- Admin routes ---
	admin := api.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(auth.RoleAdmin))
	{
		admin.GET("/dashboard/stats", ctrl.Dashboard.Stats)

		admin.GET("/students", ctrl.Student.ListStudents)
		admin.POST("/student/add", ctrl.Student.AddStudent)

		admin.GET("/hostels", ctrl.Hostel.ListHostels)
		admin.GET("/hostel/:id/rooms", ctrl.Hostel.ListRooms)
		admin.GET("/rooms/available", ctrl.Hostel.ListAvailableRooms)

		admin.POST("/allocate-room", ctrl.Allocation.AllocateRoom)
		admin.POST("/deallocate", ctrl.Allocation.Deallocate)

		admin.GET("/swap-requests", ctrl.Swap.ListSwapRequests)
		admin.POST("/swap/approve", ctrl.Swap.ApproveSwap)
		admin.POST("/swap/reject", ctrl.Swap.RejectSwap)

		admin.GET("/complaints", ctrl.Complaint.ListComplaints)
		admin.POST("/complaint/update", ctrl.Complaint.UpdateComplaintStatus)
	}
}
