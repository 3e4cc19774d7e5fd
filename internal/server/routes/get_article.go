package routes

import (
	"errors"
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func GetArticleMentionsHandler(c echo.Context) error {
	type getMentionsParams struct {
		Title string `query:"title" validate:"required"`
	}

	params := new(getMentionsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	ids, err := app.Graph.ArticleMentions(c.Request().Context(), params.Title)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Article not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, ids)
}

func GetArticleContentHandler(c echo.Context) error {
	type getContentParams struct {
		Title string `query:"title" validate:"required"`
	}

	type getContentResponse struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	params := new(getContentParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App

	text, err := app.Graph.ArticleText(c.Request().Context(), params.Title)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Article not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, getContentResponse{
		Title:   params.Title,
		Content: text,
	})
}
