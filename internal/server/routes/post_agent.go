package routes

import (
	"errors"
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/pkg/query"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func AgentQueryHandler(c echo.Context) error {
	type agentQueryParams struct {
		Question string `json:"question" validate:"required"`
	}

	params := new(agentQueryParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	result, err := app.Agent.AnswerQuery(c.Request().Context(), params.Question)
	if err != nil {
		var upstream *query.UpstreamError
		if errors.As(err, &upstream) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Query generation unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Query execution failed"})
	}

	return c.JSON(http.StatusOK, result)
}

func AgentInsightHandler(c echo.Context) error {
	type agentInsightParams struct {
		ArticleTitles []string `json:"article_titles" validate:"required,min=1"`
		AnalysisType  string   `json:"analysis_type" validate:"required,oneof=Summary Risks Direction"`
	}

	type agentInsightResponse struct {
		AnalysisType string `json:"analysis_type"`
		Insight      string `json:"insight"`
	}

	params := new(agentInsightParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	insight, err := app.Agent.GenerateInsight(c.Request().Context(), params.ArticleTitles, params.AnalysisType)
	if err != nil {
		var upstream *query.UpstreamError
		if errors.As(err, &upstream) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Insight generation unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, agentInsightResponse{
		AnalysisType: params.AnalysisType,
		Insight:      insight,
	})
}
