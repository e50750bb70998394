package http

import (
	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks", taskHandler.ListTasks)
		api.GET("/schedule", taskHandler.Schedule)
		api.PATCH("/tasks/:id", taskHandler.UpdateTask)
		api.POST("/tasks/:id/toggle", taskHandler.ToggleTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}
}
