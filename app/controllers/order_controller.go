package controllers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
)

type OrderController struct {
	summary *services.OrderSummary
}

func NewOrderController(summary *services.OrderSummary) *OrderController {
	return &OrderController{summary: summary}
}

func (o *OrderController) Summary(c *ctx.Context) {
	orders, err := o.summary.Recent(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

func (o *OrderController) Served(c *ctx.Context) {
	o.transition(c, models.StatusServed, o.summary.MarkServed)
}

func (o *OrderController) Cancelled(c *ctx.Context) {
	o.transition(c, models.StatusCancelled, o.summary.MarkCancelled)
}

func (o *OrderController) transition(c *ctx.Context, to models.OrderStatus, apply func(context.Context, string) error) {
	id := c.Param("id")
	if err := apply(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Success(services.StatusEvent{ID: id, Status: to})
}

// Print renders the printable summary page.
func (o *OrderController) Print(c *ctx.Context) {
	var buf bytes.Buffer
	if err := o.summary.Print(c.Context(), &buf); err != nil {
		fail(c, err)
		return
	}
	c.HTML(http.StatusOK, buf.Bytes())
}
