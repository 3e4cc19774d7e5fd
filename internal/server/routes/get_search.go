package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func SearchEntitiesHandler(c echo.Context) error {
	type searchParams struct {
		Query string `query:"q" validate:"required"`
	}

	params := new(searchParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	nodes, err := app.Graph.SearchEntities(c.Request().Context(), params.Query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, nodes)
}
