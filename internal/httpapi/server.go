// Package httpapi exposes the traceability engine over HTTP for the
// planning UI and sibling services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// Store is the persistence surface the API serves from. *sqlite.Store
// satisfies it.
type Store interface {
	types.HierarchyRepository
	types.CatalogRepository
	types.TraceRepository
	types.CoverageRepository
	ProgramOf(ctx context.Context, testCaseID string) (string, error)
	SaveTestCase(ctx context.Context, programID string, tc *types.TestCase) (string, error)
	DeleteTestCase(ctx context.Context, id string) error
	RecordExecution(ctx context.Context, programID string, rec types.ExecutionRecord) error
}

// Server wires the engine's read and save operations onto a gin router.
type Server struct {
	store  Store
	logger *zap.Logger
}

// NewServer builds a Server over the given store.
func NewServer(store Store, logger *zap.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Router builds the route table.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		programs := v1.Group("/programs/:programID")
		{
			programs.GET("/nodes", s.listNodes)
			programs.GET("/catalog", s.getCatalog)
			programs.GET("/testcases", s.listTestCases)
			programs.POST("/testcases", s.createTestCase)
			programs.GET("/coverage", s.listCoverage)
			programs.GET("/coverage/:l3ID", s.getCoverage)
			programs.POST("/executions", s.recordExecution)
		}
		cases := v1.Group("/testcases/:id")
		{
			cases.GET("", s.getTestCase)
			cases.DELETE("", s.deleteTestCase)
			cases.GET("/derived", s.getDerived)
			cases.POST("/validate", s.validateTestCase)
			cases.PUT("/selections", s.saveSelections)
		}
	}
	return router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http api listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// renderError maps engine errors onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrUnknownNode),
		errors.Is(err, types.ErrNotL3),
		errors.Is(err, types.ErrDuplicateL3),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidKind):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
