package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/controllers"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/middleware"
	"github.com/yigit/hostelmess/internal/pkg/websocket"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Menu         *controllers.MenuController
	Worker       *controllers.WorkerController
	Complaint    *controllers.ComplaintController
	Announcement *controllers.AnnouncementController
	Health       *controllers.HealthController
	Realtime     *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	anonKey string,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", ctrl.Health.Health)

	// API version group; every call carries the anonymous key
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AnonKey(anonKey))

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.GET("/demo-credentials", ctrl.Auth.DemoCredentials)
		auth.POST("/login", ctrl.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	committeeOnly := authMiddleware.RoleRequired(models.RoleCommittee)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)

	menu := authenticated.Group("/menu")
	{
		menu.GET("", ctrl.Menu.GetWeeklyMenu)
		menu.GET("/today", ctrl.Menu.GetTodayMenu)
		menu.PUT("/:id", committeeOnly, ctrl.Menu.UpdateMenu)
	}

	workers := authenticated.Group("/workers")
	{
		workers.GET("", ctrl.Worker.GetWorkers)
		workers.GET("/:id", ctrl.Worker.GetWorker)
		workers.GET("/:id/tip-link", ctrl.Worker.GetTipLink)
	}

	complaints := authenticated.Group("/complaints")
	{
		complaints.GET("", ctrl.Complaint.GetComplaints)
		complaints.GET("/categories", ctrl.Complaint.GetCategories)
		complaints.POST("", studentOnly, ctrl.Complaint.CreateComplaint)
		complaints.POST("/:id/image", studentOnly, ctrl.Complaint.AttachImage)
		complaints.PATCH("/:id/status", committeeOnly, ctrl.Complaint.UpdateStatus)
		complaints.POST("/:id/toggle", committeeOnly, ctrl.Complaint.ToggleStatus)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", ctrl.Announcement.GetAnnouncements)
		announcements.POST("", committeeOnly, ctrl.Announcement.CreateAnnouncement)
	}

	authenticated.GET("/realtime", ctrl.Realtime.HandleConnection)
}
