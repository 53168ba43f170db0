package v1

import (
	"github.com/gin-gonic/gin"

	"clarus-server/services/council-api/internal/interfaces/httpserver/handlers"
)

func registerBoardroomRoutes(router gin.IRouter, handler *handlers.BoardroomHandler) {
	router.GET("/boardroom/boards", handler.ListBoards)
	router.POST("/boardroom/debate", handler.Debate)
}
