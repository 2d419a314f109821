package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barron/scheduler/pkg/infrastructure/events"
	"github.com/barron/scheduler/pkg/infrastructure/monitoring"
	"github.com/barron/scheduler/pkg/infrastructure/repositories/memory"
)

// SchedulerAPI is the HTTP surface of the scheduling engine. It owns the
// gin router, the run store, and the metrics registry.
type SchedulerAPI struct {
	Router *gin.Engine

	config  *Config
	store   events.EventStore
	runs    *memory.RunRepository
	metrics *monitoring.MetricsCollector
}

// NewSchedulerAPI creates an API instance with all routes configured. The
// event store is optional.
func NewSchedulerAPI(config *Config, store events.EventStore) *SchedulerAPI {
	if config == nil {
		config = DefaultServerConfig()
	}

	api := &SchedulerAPI{
		Router:  gin.Default(),
		config:  config,
		store:   store,
		runs:    memory.NewRunRepository(),
		metrics: monitoring.NewMetricsCollector(),
	}
	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (s *SchedulerAPI) setupRoutes() {
	s.Router.GET("/", s.Root)
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	api := s.Router.Group("/api")
	{
		api.POST("/schedule", s.CreateSchedule)
		api.GET("/runs", s.ListRuns)
		api.GET("/runs/:id", s.GetRun)
	}
}

// Root describes the API.
func (s *SchedulerAPI) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Barron Production Scheduler API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"/api/schedule": "POST - compute a production schedule",
			"/api/runs":     "GET - list stored runs",
			"/api/runs/:id": "GET - fetch one stored run",
			"/health":       "GET - liveness probe",
			"/metrics":      "GET - Prometheus metrics",
		},
	})
}
