package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyatlas/missionq/internal/server/middleware"
	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/logger"
	"github.com/skyatlas/missionq/pkg/query"
)

// QueryHandler answers a natural language question against the
// ingested corpus.
func QueryHandler(c echo.Context) error {
	type queryBody struct {
		Question string `json:"question" validate:"required"`
	}

	type queryErrorResponse struct {
		Message string `json:"message"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryErrorResponse{
			Message: "Invalid request body",
		})
	}

	engine := c.(*middleware.AppContext).App.Engine
	ctx := c.Request().Context()

	resp, err := engine.Ask(ctx, data.Question)
	if err != nil {
		if errors.Is(err, query.ErrNotReady) {
			return c.JSON(http.StatusServiceUnavailable, queryErrorResponse{
				Message: "No documents ingested yet",
			})
		}
		logger.Error("[Server] Query failed", "err", err)
		return c.JSON(http.StatusInternalServerError, queryErrorResponse{
			Message: "Internal server error",
		})
	}

	if resp.Sources == nil {
		resp.Sources = []common.Source{}
	}
	if resp.Entities == nil {
		resp.Entities = []common.Mention{}
	}

	return c.JSON(http.StatusOK, resp)
}
