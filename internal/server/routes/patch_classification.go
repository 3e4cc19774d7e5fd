package routes

import (
	"errors"
	"net/http"

	"github.com/relatiq-ai/newsgraph/backend/internal/server/middleware"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

func UpdateClassificationHandler(c echo.Context) error {
	type updateClassificationParams struct {
		Title  string `json:"title" validate:"required"`
		Tier   string `json:"tier" validate:"required"`
		Status string `json:"status" validate:"required"`
	}

	type updateClassificationResponse struct {
		Message string `json:"message"`
	}

	params := new(updateClassificationParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, updateClassificationResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, updateClassificationResponse{
			Message: "Invalid request params",
		})
	}

	app := c.(*middleware.AppContext).App

	err := app.Store.UpdateClassification(c.Request().Context(), params.Title, params.Tier, params.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, updateClassificationResponse{
				Message: "Article not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, updateClassificationResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, updateClassificationResponse{
		Message: "Classification updated",
	})
}
