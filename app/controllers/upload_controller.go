package controllers

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/pkg/bind"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
	"github.com/shashiranjanraj/dinein/pkg/logger"
)

// UploadController is the image upload service. Its responses are bare JSON,
// not the API envelope.
type UploadController struct {
	images *services.ImageStore
}

func NewUploadController(images *services.ImageStore) *UploadController {
	return &UploadController{images: images}
}

type uploadError struct {
	Error string `json:"error"`
}

// Store saves the multipart "image" file and returns {filename}.
func (u *UploadController) Store(c *ctx.Context) {
	if !c.IsMultipart() {
		c.JSON(http.StatusBadRequest, uploadError{Error: "No file uploaded"})
		return
	}
	if err := bind.Multipart(c.R); err != nil {
		c.JSON(http.StatusBadRequest, uploadError{Error: err.Error()})
		return
	}

	file, original, err := c.FormFile(services.UploadField)
	if errors.Is(err, bind.ErrNoFile) {
		c.JSON(http.StatusBadRequest, uploadError{Error: "No file uploaded"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, uploadError{Error: err.Error()})
		return
	}
	defer file.Close()

	name, err := u.images.Save(c.Context(), original, file)
	if err != nil {
		logger.WithCtx(c.Context()).Error("upload: save failed", "file", original, "error", err)
		c.JSON(http.StatusInternalServerError, uploadError{Error: "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, map[string]string{"filename": name})
}

// Show serves a stored image, or the default image when it is missing.
func (u *UploadController) Show(c *ctx.Context) {
	rc, served, err := u.images.Open(c.Context(), c.Param("file"))
	if errors.Is(err, models.ErrNotFound) {
		c.NotFound("Image not found")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(served))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.SetHeader("Cache-Control", "public, max-age=86400")
	if err := c.Stream(http.StatusOK, contentType, rc); err != nil {
		logger.WithCtx(c.Context()).Warn("upload: stream interrupted", "file", served, "error", err)
	}
}
