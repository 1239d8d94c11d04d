package app

import (
	authHandler "gymdesk-service/internal/handlers/auth"
	enrollmentHandler "gymdesk-service/internal/handlers/enrollment"
	planHandler "gymdesk-service/internal/handlers/plan"
	studentHandler "gymdesk-service/internal/handlers/student"
	"gymdesk-service/internal/middleware"
	"gymdesk-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler       *authHandler.AuthHandler
	PlanHandler       *planHandler.PlanHandler
	EnrollmentHandler *enrollmentHandler.EnrollmentHandler
	StudentHandler    *studentHandler.StudentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Auth ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Students ====================
	students := api.Group("/students")
	{
		// Registration is open
		students.POST("", h.StudentHandler.Register)

		studentsAuth := students.Group("")
		studentsAuth.Use(h.AuthMiddleware.Auth())
		{
			studentsAuth.GET("", h.StudentHandler.ListStudents)
			studentsAuth.GET("/search", h.StudentHandler.SearchStudents) // ?name=xxx
			studentsAuth.GET("/:id", h.StudentHandler.GetStudent)
			studentsAuth.PUT("/:id", h.StudentHandler.UpdateStudent)
		}
	}

	// ==================== Plans ====================
	plans := api.Group("/plans")
	{
		// Catalog is public
		plans.GET("/types", h.PlanHandler.ListTypes)

		plansAuth := plans.Group("")
		plansAuth.Use(h.AuthMiddleware.Auth())
		{
			plansAuth.POST("", h.PlanHandler.CreatePlan)
			plansAuth.GET("", h.PlanHandler.ListPlans)
			plansAuth.GET("/search", h.PlanHandler.SearchPlans) // ?name= ?email= ?type= ?status= ?duration= ?discounted=
			plansAuth.GET("/recent", h.PlanHandler.RecentPlans) // ?limit=10
			plansAuth.GET("/:id", h.PlanHandler.GetPlan)
			plansAuth.PUT("/:id", h.PlanHandler.UpdatePlan)
			plansAuth.PUT("/:id/cancel", h.PlanHandler.CancelPlan)
			plansAuth.PUT("/:id/reactivate", h.PlanHandler.ReactivatePlan)
		}

		plansAdmin := plans.Group("")
		plansAdmin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole(auth.RoleAdmin))
		{
			plansAdmin.DELETE("/:id", h.PlanHandler.DeletePlan)
			plansAdmin.GET("/stats", h.PlanHandler.GetStats)
		}
	}

	// ==================== Enrollments ====================
	enrollments := api.Group("/enrollments")
	enrollments.Use(h.AuthMiddleware.Auth())
	{
		enrollments.POST("", h.EnrollmentHandler.CreateEnrollment)
		enrollments.GET("", h.EnrollmentHandler.ListEnrollments)
		enrollments.GET("/search", h.EnrollmentHandler.SearchEnrollments) // ?student_id= ?plan_id= ?status= ?payment_method= ?expiring_in=
		enrollments.GET("/:id", h.EnrollmentHandler.GetEnrollment)
		enrollments.PUT("/:id/cancel", h.EnrollmentHandler.CancelEnrollment)

		enrollmentsAdmin := enrollments.Group("")
		enrollmentsAdmin.Use(h.AuthMiddleware.RequireRole(auth.RoleAdmin))
		{
			enrollmentsAdmin.POST("/sweep", h.EnrollmentHandler.SweepExpirations)
			enrollmentsAdmin.GET("/revenue", h.EnrollmentHandler.GetRevenue) // ?from=YYYY-MM-DD&to=YYYY-MM-DD
		}
	}
}
