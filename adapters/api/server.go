package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chartadvisor/domain/core"
	apperrors "chartadvisor/internal/errors"
	"chartadvisor/internal/profile"
	"chartadvisor/internal/recommend"
	"chartadvisor/ports"
)

// Server exposes the analyze/recommend/generate surface plus chart CRUD
// over REST. The heuristics stay pure; all state lives behind the injected
// chart store port.
type Server struct {
	router    *gin.Engine
	extractor *profile.Extractor
	engine    *recommend.Engine
	charts    ports.ChartStore
}

// NewServer creates a new API server instance
func NewServer(extractor *profile.Extractor, engine *recommend.Engine, charts ports.ChartStore) *Server {
	s := &Server{
		router:    gin.Default(),
		extractor: extractor,
		engine:    engine,
		charts:    charts,
	}
	s.setupRoutes()
	return s
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/recommend", s.handleRecommend)
		api.POST("/generate", s.handleGenerate)
		api.POST("/report", s.handleReport)

		api.POST("/mapping/compose", s.handleComposeMapping)
		api.POST("/mapping/roles", s.handleRoleChange)

		api.GET("/charts", s.handleListCharts)
		api.POST("/charts", s.handleAddChart)
		api.GET("/charts/:id", s.handleGetChart)
		api.PUT("/charts/:id", s.handleUpdateChart)
		api.DELETE("/charts/:id", s.handleRemoveChart)
		api.DELETE("/charts", s.handleClearCharts)
	}
}

// respondError translates domain and application errors into HTTP status
// codes with a stable error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsDatasetError(err), core.IsMappingError(err):
		status = http.StatusBadRequest
	case apperrors.GetCode(err) == apperrors.CodeInvalidInput,
		apperrors.GetCode(err) == apperrors.CodeValidationError:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
}
