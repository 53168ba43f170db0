package v1

import (
	"github.com/gin-gonic/gin"

	"clarus-server/services/council-api/internal/interfaces/httpserver/handlers"
)

func registerDebateRoutes(router gin.IRouter, handler *handlers.DebateHandler) {
	router.GET("/debates", handler.List)
	router.GET("/debates/:debate_id", handler.Get)
}
