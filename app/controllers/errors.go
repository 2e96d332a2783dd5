package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
	"github.com/shashiranjanraj/dinein/pkg/logger"
)

// fail maps a service error onto the response envelope.
func fail(c *ctx.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.Is(err, models.ErrNotFound):
		c.NotFound()
	case errors.Is(err, models.ErrLineNotFound):
		c.NotFound("Item is not in the cart")
	case errors.Is(err, models.ErrNotConfirmed):
		c.Error(http.StatusBadRequest, "Delete must be confirmed")
	case errors.Is(err, models.ErrInvalidTransition):
		c.Error(http.StatusConflict, "Order is no longer pending")
	case errors.Is(err, models.ErrUploadFailed):
		logger.WithCtx(c.Context()).Warn("upload failed", "path", c.Path(), "error", err)
		c.Error(http.StatusBadGateway, "Image upload failed")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		c.Error(http.StatusInternalServerError, "Something went wrong")
	}
}
