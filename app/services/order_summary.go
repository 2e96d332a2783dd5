package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
	"github.com/shashiranjanraj/dinein/pkg/collection"
	"github.com/shashiranjanraj/dinein/pkg/logger"
	"github.com/shashiranjanraj/dinein/pkg/metrics"
)

// Status colours.
const (
	TonePositive = "positive"
	ToneNegative = "negative"
	ToneNeutral  = "neutral"
)

// Actions offered on a pending order.
const (
	ActionServe  = "serve"
	ActionCancel = "cancel"
)

const createdAtLayout = "02 Jan 2006, 3:04 PM"

// SummaryOrder is an order prepared for the summary screen.
type SummaryOrder struct {
	models.Order
	CreatedAtText string   `json:"createdAtText"`
	Tone          string   `json:"tone"`
	Actions       []string `json:"actions"`
}

// StartOfYesterday is local midnight one day before now, in loc.
func StartOfYesterday(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func tone(status models.OrderStatus) string {
	switch status {
	case models.StatusServed:
		return TonePositive
	case models.StatusCancelled:
		return ToneNegative
	}
	return ToneNeutral
}

type OrderSummary struct {
	orders repositories.OrderStore
	loc    *time.Location
	notify Notifier
	now    func() time.Time
}

func NewOrderSummary(orders repositories.OrderStore, loc *time.Location, notify Notifier) *OrderSummary {
	if loc == nil {
		loc = time.Local
	}
	if notify == nil {
		notify = NopNotifier()
	}
	return &OrderSummary{orders: orders, loc: loc, notify: notify, now: time.Now}
}

// Recent returns the orders created since the start of yesterday, newest
// first.
func (s *OrderSummary) Recent(ctx context.Context) ([]SummaryOrder, error) {
	orders, err := s.orders.ListSince(ctx, StartOfYesterday(s.now(), s.loc))
	if err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}

	return collection.Map(orders, func(o models.Order) SummaryOrder {
		actions := []string{}
		if o.Status == models.StatusPending {
			actions = []string{ActionServe, ActionCancel}
		}
		if o.Items == nil {
			o.Items = []models.LineItem{}
		}
		return SummaryOrder{
			Order:         o,
			CreatedAtText: o.CreatedAt.In(s.loc).Format(createdAtLayout),
			Tone:          tone(o.Status),
			Actions:       actions,
		}
	}), nil
}

func (s *OrderSummary) MarkServed(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.StatusServed)
}

func (s *OrderSummary) MarkCancelled(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.StatusCancelled)
}

func (s *OrderSummary) transition(ctx context.Context, id string, to models.OrderStatus) error {
	if err := s.orders.UpdateStatus(ctx, id, to); err != nil {
		metrics.OrderTransitions.WithLabelValues(string(to), "rejected").Inc()
		return err
	}

	metrics.OrderTransitions.WithLabelValues(string(to), "ok").Inc()
	logger.WithCtx(ctx).Info("order summary: status changed", "order", id, "status", to)
	s.notify.OrderStatusChanged(id, to)
	return nil
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Order Summary</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
.order { border-bottom: 1px solid #ccc; padding: .5rem 0; page-break-inside: avoid; }
.positive { color: #1b7f3b; }
.negative { color: #b3261e; }
.neutral { color: #555; }
.notes { font-style: italic; color: #666; }
</style>
</head>
<body onload="window.print()">
<h1>Order Summary</h1>
{{- range .}}
<div class="order">
<h2>Table {{.TableNumber}} <small>({{if .IsAC}}AC{{else}}Non-AC{{end}})</small></h2>
<p>{{.CreatedAtText}} &middot; <span class="{{.Tone}}">{{.Status}}</span></p>
<ul>
{{- range .Items}}
<li>{{.Name}} &times; {{.Quantity}}{{if .Notes}} <span class="notes">{{.Notes}}</span>{{end}}</li>
{{- end}}
</ul>
<p><strong>Total: {{printf "%.2f" .Total}}</strong></p>
</div>
{{- else}}
<p>No orders found.</p>
{{- end}}
</body>
</html>
`))

// Print writes the recent orders as a printable page with no controls.
func (s *OrderSummary) Print(ctx context.Context, w io.Writer) error {
	orders, err := s.Recent(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, orders); err != nil {
		return fmt.Errorf("order summary: render: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
