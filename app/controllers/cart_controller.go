package controllers

import (
	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
)

type CartController struct {
	taker *services.OrderTaker
}

func NewCartController(taker *services.OrderTaker) *CartController {
	return &CartController{taker: taker}
}

func (cc *CartController) Open(c *ctx.Context) {
	var body struct {
		IsAC bool `json:"isAC"`
	}
	if !c.DecodeJSON(&body) {
		return
	}

	cart, err := cc.taker.Open(c.Context(), body.IsAC)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(cart)
}

func (cc *CartController) Show(c *ctx.Context) {
	cart, err := cc.taker.Cart(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) Catalog(c *ctx.Context) {
	catalog, err := cc.taker.Catalog(c.Context(), c.Query("cart"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(catalog)
}

func (cc *CartController) Room(c *ctx.Context) {
	var body struct {
		IsAC *bool `json:"isAC" validate:"required"`
	}
	if !c.BindJSON(&body) {
		return
	}

	cart, err := cc.taker.SetRoom(c.Context(), c.Param("id"), *body.IsAC)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) AddItem(c *ctx.Context) {
	var body struct {
		MenuItemID string `json:"menuItemId" validate:"required"`
	}
	if !c.BindJSON(&body) {
		return
	}

	cart, err := cc.taker.Add(c.Context(), c.Param("id"), body.MenuItemID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

// UpdateItem applies a quantity delta, new notes, or both.
func (cc *CartController) UpdateItem(c *ctx.Context) {
	var body struct {
		Delta *int    `json:"delta"`
		Notes *string `json:"notes"`
	}
	if !c.DecodeJSON(&body) {
		return
	}
	if body.Delta == nil && body.Notes == nil {
		c.ValidationError(map[string]string{"delta": "Provide a quantity change or notes."})
		return
	}

	id, item := c.Param("id"), c.Param("itemId")
	var err error
	if body.Delta != nil {
		_, err = cc.taker.ChangeQuantity(c.Context(), id, item, *body.Delta)
	}
	if err == nil && body.Notes != nil {
		_, err = cc.taker.SetNotes(c.Context(), id, item, *body.Notes)
	}
	if err != nil {
		fail(c, err)
		return
	}

	cart, err := cc.taker.Cart(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) RemoveItem(c *ctx.Context) {
	cart, err := cc.taker.Remove(c.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) Submit(c *ctx.Context) {
	var body struct {
		TableNumber string `json:"tableNumber"`
	}
	if !c.DecodeJSON(&body) {
		return
	}

	sub, err := cc.taker.Submit(c.Context(), c.Param("id"), body.TableNumber)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(sub)
}
