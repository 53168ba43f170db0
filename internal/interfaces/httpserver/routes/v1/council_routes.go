package v1

import (
	"github.com/gin-gonic/gin"

	"clarus-server/services/council-api/internal/interfaces/httpserver/handlers"
)

func registerCouncilRoutes(router gin.IRouter, handler *handlers.CouncilHandler) {
	router.POST("/councils", handler.Create)
	router.GET("/councils", handler.List)
	router.GET("/councils/:council_id", handler.Get)

	router.POST("/council/quick", handler.Quick)
	router.POST("/council/debate", handler.Debate)
}
