package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/pkg/bind"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
)

type AdminController struct {
	admin *services.MenuAdmin
}

func NewAdminController(admin *services.MenuAdmin) *AdminController {
	return &AdminController{admin: admin}
}

func (a *AdminController) Index(c *ctx.Context) {
	menu, err := a.admin.Load(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(menu)
}

// Store creates or updates an item. It accepts JSON, or multipart form data
// carrying an optional "image" file.
func (a *AdminController) Store(c *ctx.Context) {
	var (
		form services.MenuForm
		file *services.ImageFile
	)

	if c.IsMultipart() {
		if !c.BindMultipart() {
			return
		}

		errs := map[string]string{}
		form = services.MenuForm{
			ID:         c.PostForm("id"),
			Name:       c.PostForm("name"),
			PriceAC:    parsePrice(c.PostForm("priceAC"), "priceAC", errs),
			PriceNonAC: parsePrice(c.PostForm("priceNonAC"), "priceNonAC", errs),
			Category:   c.PostForm("category"),
		}
		if len(errs) > 0 {
			c.ValidationError(errs)
			return
		}

		body, filename, err := c.FormFile(services.UploadField)
		switch {
		case err == nil:
			defer body.Close()
			file = &services.ImageFile{Filename: filename, Body: body}
		case !errors.Is(err, bind.ErrNoFile):
			fail(c, err)
			return
		}
	} else if !c.DecodeJSON(&form) {
		return
	}

	menu, err := a.admin.Submit(c.Context(), form, file)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(menu)
}

func (a *AdminController) Show(c *ctx.Context) {
	item, err := a.admin.Edit(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(item)
}

// Destroy deletes an item. The caller confirms with ?confirm=true.
func (a *AdminController) Destroy(c *ctx.Context) {
	confirmed, _ := strconv.ParseBool(c.DefaultQuery("confirm", "false"))

	menu, err := a.admin.Delete(c.Context(), c.Param("id"), confirmed)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(menu)
}

// parsePrice reads a form price. Empty stays zero so the required rule
// reports it.
func parsePrice(raw, field string, errs map[string]string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs[field] = "The " + field + " must be a number."
		return 0
	}
	return v
}
