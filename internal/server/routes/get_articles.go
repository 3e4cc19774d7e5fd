package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/pkg/filter"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func GetArticlesHandler(c echo.Context) error {
	type getArticlesParams struct {
		Limit        int      `query:"limit"`
		DateRange    string   `query:"date_range"`
		Tiers        []string `query:"tiers[]"`
		Statuses     []string `query:"news_status[]"`
		Sectors      []string `query:"sectors[]"`
		EntitySearch string   `query:"entity_search"`
	}

	params := new(getArticlesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	articles, err := app.Graph.ListArticles(ctx, filter.Spec{
		DateRange:    params.DateRange,
		Tiers:        params.Tiers,
		Statuses:     params.Statuses,
		Sectors:      params.Sectors,
		EntitySearch: params.EntitySearch,
	}, params.Limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, articles)
}
