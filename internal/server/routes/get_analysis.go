package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func AnalyzeCompaniesHandler(c echo.Context) error {
	type analyzeParams struct {
		ArticleTitles []string `query:"article_titles[]" validate:"required,min=1"`
	}

	params := new(analyzeParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	analysis, err := app.Graph.AnalyzeCompanies(c.Request().Context(), params.ArticleTitles)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, analysis)
}
