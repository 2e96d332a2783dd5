package models

import (
	"time"

	"github.com/shashiranjanraj/dinein/pkg/collection"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusServed || s == StatusCancelled
}

// CanTransition reports whether an order in from may move to to. Only a
// pending order can change, and only to served or cancelled.
func CanTransition(from, to OrderStatus) bool {
	return from == StatusPending && to.Terminal()
}

// LineItem is a menu item captured into a cart or order. Price is the unit
// price at the moment the item was added and never follows catalog edits.
type LineItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes"`
}

func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is a submitted table order. Items and total are fixed at submission.
type Order struct {
	ID          string      `json:"id"`
	TableNumber string      `json:"tableNumber"`
	IsAC        bool        `json:"isAC"`
	Items       []LineItem  `json:"items"`
	Total       float64     `json:"total"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Room returns "ac" or "nonac".
func (o Order) Room() string {
	return RoomName(o.IsAC)
}

// RoomName is the short label for a room type.
func RoomName(isAC bool) string {
	if isAC {
		return "ac"
	}
	return "nonac"
}

// Total sums the subtotals of lines.
func Total(lines []LineItem) float64 {
	return collection.Sum(lines, LineItem.Subtotal)
}
