package server

import (
	"github.com/labstack/echo/v4"

	"github.com/skyatlas/missionq/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Query routes
	apiRoutes.POST("/query", routes.QueryHandler)

	// Knowledge graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)

	// Document routes
	apiRoutes.GET("/documents", routes.GetDocumentsHandler)
	apiRoutes.POST("/documents", routes.AddDocumentsHandler)
}
