// Package httpserver exposes the scheduler over a thin REST surface.
package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/services"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/metrics"
)

// RunFunc executes one scheduling run for the current instant.
type RunFunc func(ctx context.Context) (*services.RunSchedulerResult, error)

// FindFunc resolves a free-text employee name.
type FindFunc func(ctx context.Context, name string) (any, error)

// New builds the gin router. The handlers are thin: domain errors map to
// status codes and everything else is delegated to the services layer.
func New(run RunFunc, find FindFunc, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/scheduler/run", func(c *gin.Context) {
		result, err := run(c.Request.Context())
		switch {
		case errors.Is(err, services.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		case err != nil:
			logger.Error("scheduler run failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusOK, result)
		}
	})

	router.GET("/api/employees/find", func(c *gin.Context) {
		name := c.Query("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "name query parameter is required"})
			return
		}

		employee, err := find(c.Request.Context(), name)
		switch {
		case errors.Is(err, services.ErrNoMatch):
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		case err != nil:
			logger.Error("employee lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusOK, employee)
		}
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return router
}
