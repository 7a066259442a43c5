package middleware

import (
	"github.com/Verridian-ai/legal-gsw/pkg/workspace"

	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"
)

type App struct {
	Store workspace.Store
	Queue *amqp091.Channel
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(
	store workspace.Store,
	queue *amqp091.Channel,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				Store: store,
				Queue: queue,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
