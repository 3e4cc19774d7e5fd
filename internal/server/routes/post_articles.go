package routes

import (
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/pkg/logger"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func CreateArticleHandler(c echo.Context) error {
	type createArticleResponse struct {
		Message string `json:"message"`
	}

	bundle := new(store.ArticleBundle)
	if err := c.Bind(bundle); err != nil {
		return c.JSON(http.StatusBadRequest, createArticleResponse{
			Message: "Invalid request body",
		})
	}
	if bundle.Document.Title == "" {
		return c.JSON(http.StatusBadRequest, createArticleResponse{
			Message: "Document title is required",
		})
	}

	app := c.(*middleware.AppContext).App

	if err := app.Store.SaveArticle(c.Request().Context(), *bundle); err != nil {
		logger.Error("[Routes] Failed to save article", "title", bundle.Document.Title, "err", err)
		return c.JSON(http.StatusInternalServerError, createArticleResponse{
			Message: "Failed to save article",
		})
	}

	return c.JSON(http.StatusCreated, createArticleResponse{
		Message: "Article saved",
	})
}
