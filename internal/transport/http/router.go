package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/transport/http/middleware"
)

// NewRouter wires the match API. stream serves the websocket route and may
// be nil.
func NewRouter(h *MatchHandler, stream gin.HandlerFunc, allowedOrigins []string, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(log), gin.Recovery())
	router.Use(middleware.CORSMiddleware(allowedOrigins, log))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/difficulties", h.Difficulties)
		api.GET("/matches", h.ListMatches)
		api.POST("/matches", h.CreateMatch)
		api.GET("/matches/:id", h.GetMatch)
		api.DELETE("/matches/:id", h.DeleteMatch)
		api.POST("/matches/:id/start", h.StartMatch)
		api.POST("/matches/:id/moves", h.Move)
		api.POST("/matches/:id/reset", h.Reset)
	}

	if stream != nil {
		router.GET("/ws/matches/:id", stream)
	}
	return router
}
