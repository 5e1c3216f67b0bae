package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/UnknownOlympus/athena/internal/metrics"
)

const corsMaxAge = 12 * time.Hour

// NewRouter builds the API engine: request logging, metrics, panic recovery,
// optional CORS and the employee routes under /api.
func NewRouter(
	log *slog.Logger,
	appMetrics *metrics.Metrics,
	corsOrigins []string,
	employeeHandler *EmployeeHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(log), Metrics(appMetrics), Recovery(log))

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
			},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Location"},
			MaxAge:        corsMaxAge,
		}))
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "route not found")
	})

	api := router.Group("/api")
	employeeHandler.RegisterRoutes(api)

	return router
}
