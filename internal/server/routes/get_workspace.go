package routes

import (
	"net/http"

	"github.com/Verridian-ai/legal-gsw/internal/server/middleware"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"

	"github.com/labstack/echo/v4"
)

func GetWorkspaceHandler(c echo.Context) error {
	type getWorkspaceResponse struct {
		Entities    int      `json:"entities"`
		Events      int      `json:"events"`
		States      int      `json:"states"`
		Outcomes    int      `json:"outcomes"`
		Documents   int      `json:"documents"`
		DocumentIDs []string `json:"document_ids"`
	}

	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	return c.JSON(http.StatusOK, getWorkspaceResponse{
		Entities:    len(graph.Entities),
		Events:      len(graph.Timeline),
		States:      len(graph.States),
		Outcomes:    len(graph.Outcomes),
		Documents:   len(graph.DocumentIDs),
		DocumentIDs: graph.DocumentIDs,
	})
}

func GetVocabularyHandler(c echo.Context) error {
	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	return c.JSON(http.StatusOK, gsw.BuildVocabulary(graph))
}
