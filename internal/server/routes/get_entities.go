package routes

import (
	"net/http"

	"github.com/Verridian-ai/legal-gsw/internal/server/middleware"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"

	"github.com/labstack/echo/v4"
)

func GetEntitiesHandler(c echo.Context) error {
	type getEntitiesParams struct {
		Kind string `query:"kind" validate:"omitempty,oneof=person object"`
	}

	params := new(getEntitiesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	entities := make([]*gsw.Entity, 0, len(graph.Entities))
	for _, entity := range graph.Entities {
		if params.Kind != "" && entity.Kind != gsw.EntityKind(params.Kind) {
			continue
		}
		entities = append(entities, entity)
	}

	return c.JSON(http.StatusOK, entities)
}

func GetEntityHandler(c echo.Context) error {
	type getEntityParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getEntityParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	entity := graph.EntityByID(params.ID)
	if entity == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}

	return c.JSON(http.StatusOK, entity)
}

func GetEntityStatesHandler(c echo.Context) error {
	type getEntityStatesParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getEntityStatesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load workspace"})
	}

	if graph.EntityByID(params.ID) == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
	}

	return c.JSON(http.StatusOK, graph.StatesForEntity(params.ID))
}
