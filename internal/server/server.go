package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Verridian-ai/legal-gsw/internal/queue"
	mid "github.com/Verridian-ai/legal-gsw/internal/server/middleware"
	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/migrations"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
	"github.com/Verridian-ai/legal-gsw/pkg/workspace"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store workspace.Store
	databaseURL := util.GetEnvString("DATABASE_URL", "")
	if databaseURL != "" {
		if err := migrations.Run(databaseURL); err != nil {
			logger.Fatal("Failed to run migrations", "err", err)
		}
		conn, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", "err", err)
		}
		defer conn.Close()
		store = workspace.NewPGXStore(workspace.PGXStoreParams{Pool: conn})
	} else {
		path := util.GetEnvString("WORKSPACE_PATH", "data/workspace.json")
		store = workspace.NewFileStore(workspace.FileStoreParams{Path: path})
	}

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.DocumentQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	e.Use(mid.AppContextMiddleware(store, ch))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
