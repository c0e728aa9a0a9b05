// Package router builds the gin engine serving the read API.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/server/handler"
)

type Config struct {
	ItemHandler *handler.ItemHandler

	// CORSOrigins is the allow-list of browser origins.
	CORSOrigins []string
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	registerItemRoutes(router, cfg.ItemHandler)

	return router
}
