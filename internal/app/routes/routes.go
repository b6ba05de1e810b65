package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekinura/schoolboard/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	schoolController *controllers.SchoolController,
	healthController *controllers.HealthController,
) {
	router.GET("/healthz", healthController.Healthz)

	api := router.Group("/api")

	schools := api.Group("/schools")
	{
		schools.POST("", schoolController.CreateSchool)
		schools.GET("", schoolController.ListSchools)
	}
}
