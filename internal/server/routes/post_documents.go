package routes

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyatlas/missionq/internal/corpus"
	"github.com/skyatlas/missionq/internal/queue"
	"github.com/skyatlas/missionq/internal/server/middleware"
	"github.com/skyatlas/missionq/internal/util"
	"github.com/skyatlas/missionq/pkg/common"
	"github.com/skyatlas/missionq/pkg/logger"
)

// AddDocumentsHandler submits a batch of documents for ingestion. With
// a message queue configured the batch is published for the worker;
// otherwise it is ingested synchronously.
func AddDocumentsHandler(c echo.Context) error {
	type addDocumentsBody struct {
		Documents []common.Document `json:"documents" validate:"required,min=1,dive"`
	}

	type addDocumentsResponse struct {
		Message  string `json:"message"`
		Accepted int    `json:"accepted"`
	}

	data := new(addDocumentsBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentsResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentsResponse{
			Message: "Invalid request body",
		})
	}

	docs, err := corpus.Normalize(data.Documents)
	if err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentsResponse{
			Message: err.Error(),
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	if app.Queue != nil {
		msg := queue.IngestMsg{
			Message:   "Ingest document batch",
			Documents: docs,
		}
		msgBytes, err := json.Marshal(msg)
		if err != nil {
			logger.Error("[Server] Failed to marshal ingest message", "err", err)
			return c.JSON(http.StatusInternalServerError, addDocumentsResponse{
				Message: "Internal server error",
			})
		}

		if err := queue.PublishFIFO(app.Queue, queue.IngestQueue, msgBytes); err != nil {
			logger.Error("[Server] Failed to publish ingest message", "err", err)
			return c.JSON(http.StatusInternalServerError, addDocumentsResponse{
				Message: "Internal server error",
			})
		}

		return c.JSON(http.StatusAccepted, addDocumentsResponse{
			Message:  "Batch queued for ingestion",
			Accepted: len(docs),
		})
	}

	if err := app.Pipeline.Ingest(ctx, docs); err != nil {
		logger.Error("[Server] Failed to ingest batch", "err", err)
		return c.JSON(http.StatusInternalServerError, addDocumentsResponse{
			Message: "Internal server error",
		})
	}

	if app.Snapshots != nil {
		snap := app.Pipeline.Store().Snapshot()
		err := util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
			return app.Snapshots.Save(ctx, snap)
		})
		if err != nil {
			logger.Error("[Server] Failed to persist graph snapshot", "err", err)
		}
	}

	return c.JSON(http.StatusOK, addDocumentsResponse{
		Message:  "Batch ingested",
		Accepted: len(docs),
	})
}
