package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyatlas/missionq/internal/server/middleware"
)

// GetGraphHandler exports the knowledge graph as nodes and links for
// visualization.
func GetGraphHandler(c echo.Context) error {
	engine := c.(*middleware.AppContext).App.Engine
	return c.JSON(http.StatusOK, engine.GraphSnapshot())
}
