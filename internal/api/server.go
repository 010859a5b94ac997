package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Michaellinaresxk/hitback-server/internal/catalog"
	"github.com/Michaellinaresxk/hitback-server/internal/config"
	database "github.com/Michaellinaresxk/hitback-server/internal/db"
	"github.com/Michaellinaresxk/hitback-server/internal/game"
)

type Server struct {
	cfg     *config.Config
	db      *database.Client
	store   *game.Store
	catalog *catalog.Catalog
	router  *gin.Engine
}

func New(cfg *config.Config, db *database.Client, store *game.Store, cat *catalog.Catalog) *Server {
	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		db:      db,
		store:   store,
		catalog: cat,
		router:  gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "hitback-server"})
	})

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/sessions", s.CreateSession)
		v1.GET("/sessions", s.GetSessions)
		v1.GET("/sessions/:id", s.GetSession)
		v1.DELETE("/sessions/:id", s.DeleteSession)

		// Gameplay
		v1.POST("/sessions/:id/start", s.StartGame)
		v1.POST("/sessions/:id/pause", s.PauseGame)
		v1.POST("/sessions/:id/rounds", s.NextRound)
		v1.POST("/sessions/:id/bets", s.PlaceBet)
		v1.POST("/sessions/:id/reveal", s.RevealAnswer)
		v1.POST("/sessions/:id/answers/validate", s.ValidateAnswer)

		// Catalog
		v1.GET("/catalog", s.GetCatalogInfo)
		v1.POST("/catalog/reload", s.ReloadCatalog)
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
