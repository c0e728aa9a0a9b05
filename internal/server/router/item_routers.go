package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/server/handler"
)

func registerItemRoutes(router *gin.Engine, itemHandler *handler.ItemHandler) {
	router.GET("/health", itemHandler.Health)
	router.GET("/items", itemHandler.GetItems)
	router.GET("/history/:id", itemHandler.GetHistory)
}
