package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyatlas/missionq/internal/server/middleware"
	"github.com/skyatlas/missionq/pkg/common"
)

// GetDocumentsHandler lists the ingested documents in insertion order.
func GetDocumentsHandler(c echo.Context) error {
	type documentsResponse struct {
		Documents []common.Document `json:"documents"`
		Total     int               `json:"total"`
	}

	engine := c.(*middleware.AppContext).App.Engine
	docs := engine.KnowledgeBase()
	if docs == nil {
		docs = []common.Document{}
	}

	return c.JSON(http.StatusOK, documentsResponse{
		Documents: docs,
		Total:     len(docs),
	})
}
