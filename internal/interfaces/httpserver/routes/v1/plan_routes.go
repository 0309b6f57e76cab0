package v1

import (
	"github.com/gin-gonic/gin"

	"campaign-plan-service/internal/interfaces/httpserver/handlers"
)

func registerPlanRoutes(router gin.IRoutes, handler *handlers.PlanHandler) {
	router.POST("/plans", handler.Create)
	router.GET("/plans/:plan_id", handler.Get)
	router.DELETE("/plans/:plan_id", handler.Delete)

	// Sections nested under plans
	router.GET("/plans/:plan_id/sections", handler.ListSections)
	router.POST("/plans/:plan_id/sections", handler.AddSection)
}
