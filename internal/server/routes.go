package server

import (
	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Article browsing
	apiRoutes.GET("/articles", routes.GetArticlesHandler)
	apiRoutes.GET("/sectors", routes.GetSectorsHandler)
	apiRoutes.GET("/articles/mentions", routes.GetArticleMentionsHandler)
	apiRoutes.GET("/articles/content", routes.GetArticleContentHandler)

	// Graph views
	apiRoutes.GET("/graph/search", routes.SearchEntitiesHandler)
	apiRoutes.GET("/graph/network", routes.GetNetworkHandler)
	apiRoutes.GET("/analysis/companies", routes.AnalyzeCompaniesHandler)

	// Agent
	apiRoutes.POST("/agent/query", routes.AgentQueryHandler)
	apiRoutes.POST("/agent/insight", routes.AgentInsightHandler)
	apiRoutes.GET("/agent/metrics", routes.GetAgentMetricsHandler)

	// Ingestion (service-to-service)
	apiRoutes.POST("/articles", routes.CreateArticleHandler, middleware.RequireRole("ingest"))
	apiRoutes.PATCH("/articles/classification", routes.UpdateClassificationHandler, middleware.RequireRole("ingest"))
}
