package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/skyatlas/missionq/pkg/graph"
	"github.com/skyatlas/missionq/pkg/query"
	"github.com/skyatlas/missionq/pkg/store"
)

// App bundles the shared application state handed to every route.
// Queue and Snapshots are nil when the respective backend is not
// configured.
type App struct {
	Engine    *query.Engine
	Pipeline  *graph.Pipeline
	Queue     *amqp091.Channel
	Snapshots store.SnapshotStore
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
