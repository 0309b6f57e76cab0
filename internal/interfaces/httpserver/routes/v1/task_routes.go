package v1

import (
	"github.com/gin-gonic/gin"

	"campaign-plan-service/internal/interfaces/httpserver/handlers"
)

func registerTaskRoutes(router gin.IRoutes, handler *handlers.TaskHandler) {
	router.GET("/plans/:plan_id/tasks", handler.List)
	router.POST("/plans/:plan_id/tasks", handler.Create)
	router.GET("/plans/:plan_id/tasks/:task_id", handler.Get)
	router.PUT("/plans/:plan_id/tasks/:task_id", handler.Replace)
	router.PATCH("/plans/:plan_id/tasks/:task_id", handler.Patch)
	router.DELETE("/plans/:plan_id/tasks/:task_id", handler.Remove)
}
