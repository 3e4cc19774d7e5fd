package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetSectorsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	sectors, err := app.Graph.ListSectors(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, sectors)
}
