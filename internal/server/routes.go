package server

import (
	"github.com/Verridian-ai/legal-gsw/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Workspace routes
	apiRoutes.GET("/workspace", routes.GetWorkspaceHandler)
	apiRoutes.GET("/vocabulary", routes.GetVocabularyHandler)

	// Entity routes
	apiRoutes.GET("/entities", routes.GetEntitiesHandler)
	apiRoutes.GET("/entities/:id", routes.GetEntityHandler)
	apiRoutes.GET("/entities/:id/states", routes.GetEntityStatesHandler)

	// Timeline and outcome routes
	apiRoutes.GET("/timeline", routes.GetTimelineHandler)
	apiRoutes.GET("/outcomes", routes.GetOutcomesHandler)

	// Document ingestion routes
	apiRoutes.POST("/documents", routes.PostDocumentHandler)
}
