package services

import (
	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/logger"
	"github.com/shashiranjanraj/dinein/pkg/ws"
)

// Feed event names.
const (
	EventOrderCreated = "order.created"
	EventOrderStatus  = "order.status"
)

// Notifier is told about order changes after they are stored.
type Notifier interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(id string, status models.OrderStatus)
}

// StatusEvent is the payload of an order.status event.
type StatusEvent struct {
	ID     string             `json:"id"`
	Status models.OrderStatus `json:"status"`
}

type hubNotifier struct {
	hub *ws.Hub
}

// NewHubNotifier publishes order changes to every feed client of hub.
func NewHubNotifier(hub *ws.Hub) Notifier {
	return hubNotifier{hub: hub}
}

func (n hubNotifier) OrderCreated(order models.Order) {
	if err := n.hub.Publish(EventOrderCreated, order); err != nil {
		logger.Warn("feed: publish failed", "event", EventOrderCreated, "error", err)
	}
}

func (n hubNotifier) OrderStatusChanged(id string, status models.OrderStatus) {
	if err := n.hub.Publish(EventOrderStatus, StatusEvent{ID: id, Status: status}); err != nil {
		logger.Warn("feed: publish failed", "event", EventOrderStatus, "error", err)
	}
}

type nopNotifier struct{}

// NopNotifier discards every notification.
func NopNotifier() Notifier { return nopNotifier{} }

func (nopNotifier) OrderCreated(models.Order)                     {}
func (nopNotifier) OrderStatusChanged(string, models.OrderStatus) {}
