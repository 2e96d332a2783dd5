package controllers

import (
	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
)

type MenuController struct {
	browser *services.MenuBrowser
}

func NewMenuController(browser *services.MenuBrowser) *MenuController {
	return &MenuController{browser: browser}
}

// Index lists the menu filtered by ?category=, ?q= and ?room=.
func (m *MenuController) Index(c *ctx.Context) {
	res, err := m.browser.Browse(c.Context(), services.BrowseFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Room:     c.Query("room"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(res)
}
