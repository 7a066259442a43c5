package routes

import (
	"net/http"

	"github.com/Verridian-ai/legal-gsw/internal/server/middleware"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"

	"github.com/labstack/echo/v4"
)

func GetTimelineHandler(c echo.Context) error {
	type getTimelineParams struct {
		ParticipantID string `query:"participant_id"`
	}

	params := new(getTimelineParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	if params.ParticipantID == "" {
		return c.JSON(http.StatusOK, graph.Timeline)
	}

	events := make([]*gsw.Event, 0)
	for _, event := range graph.Timeline {
		for _, id := range event.ParticipantIDs {
			if id == params.ParticipantID {
				events = append(events, event)
				break
			}
		}
	}
	return c.JSON(http.StatusOK, events)
}

func GetOutcomesHandler(c echo.Context) error {
	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	return c.JSON(http.StatusOK, graph.Outcomes)
}
