package main

import (
	"net/http"
	"time"

	"dnd_quest_board/internal/api"
	"dnd_quest_board/internal/middleware"
	"dnd_quest_board/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func newRouter(cfg ServerConfig, qs service.QuestServiceI) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api")
	api.NewQuestRoutes(a, qs)
	api.NewStaticRoutes(router, cfg.StaticDir, cfg.IndexFile)

	return router
}
