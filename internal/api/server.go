// Package api exposes the analysis pipeline as a stateless JSON API.
// Unlike the dashboard it holds no session: every request carries its
// own dataset.
package api

import (
	"github.com/gin-gonic/gin"

	"trendlab/adapters/ingest"
	"trendlab/internal"
	"trendlab/internal/config"
)

// Server hosts the JSON API routes
type Server struct {
	engine *gin.Engine
	reader *ingest.Reader
	config *config.Config
	log    *internal.Logger
}

// NewServer creates the API server with its routes registered
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		engine: gin.Default(),
		reader: ingest.NewReader(),
		config: cfg,
		log:    internal.NewDefaultLogger(),
	}

	s.engine.MaxMultipartMemory = cfg.Upload.MaxFileSizeMB << 20

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/healthz", s.handleHealth)
		v1.POST("/timeseries", s.handleTimeSeries)
		v1.POST("/ttest", s.handleTTest)
		v1.POST("/chisquare", s.handleChiSquare)
	}

	return s
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	s.log.Info("TrendLab API listening on %s", addr)
	return s.engine.Run(addr)
}

// Engine exposes the gin engine for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
