package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/pkg/filter"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func GetNetworkHandler(c echo.Context) error {
	type getNetworkParams struct {
		ArticleTitles []string `query:"article_titles[]"`
		DateRange     string   `query:"date_range"`
		Tiers         []string `query:"tiers[]"`
		Statuses      []string `query:"news_status[]"`
		Sectors       []string `query:"sectors[]"`
		EntitySearch  string   `query:"entity_search"`
		NodeTypes     []string `query:"node_types[]"`
		RelTypes      []string `query:"rel_types[]"`
	}

	params := new(getNetworkParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	// An explicit article selection overrides the ambient document
	// filters; filter.Spec.Compile enforces that, the handler just
	// passes everything through.
	network, err := app.Graph.BuildNetwork(c.Request().Context(), filter.Spec{
		ArticleTitles: params.ArticleTitles,
		DateRange:     params.DateRange,
		Tiers:         params.Tiers,
		Statuses:      params.Statuses,
		Sectors:       params.Sectors,
		EntitySearch:  params.EntitySearch,
	}, params.NodeTypes, params.RelTypes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, network)
}
