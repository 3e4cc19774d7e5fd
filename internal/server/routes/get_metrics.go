package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// GetAgentMetricsHandler reports the model usage accumulated by the
// shared AI client since start or the last reset.
func GetAgentMetricsHandler(c echo.Context) error {
	type getMetricsParams struct {
		Reset bool `query:"reset"`
	}

	params := new(getMetricsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	metrics := app.AiClient.GetMetrics()
	if params.Reset {
		app.AiClient.ResetMetrics()
	}

	return c.JSON(http.StatusOK, metrics)
}
