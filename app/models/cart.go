package models

import (
	"math"
	"strings"
	"time"

	"github.com/shashiranjanraj/dinein/pkg/collection"
)

// Cart is a waiter's in-progress order for one table. It lives only until it
// is submitted or expires.
type Cart struct {
	ID        string     `json:"id"`
	IsAC      bool       `json:"isAC"`
	Lines     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func NewCart(id string, isAC bool, now time.Time) *Cart {
	return &Cart{ID: id, IsAC: isAC, Lines: []LineItem{}, UpdatedAt: now}
}

// SetRoom switches the room type. Lines already in the cart keep the price
// they were added at.
func (c *Cart) SetRoom(isAC bool) {
	c.IsAC = isAC
}

// Add puts one unit of item in the cart at the current room price. An item
// already present gains one unit and keeps its captured price.
func (c *Cart) Add(item MenuItem) {
	if i := c.index(item.ID); i >= 0 {
		c.Lines[i].Quantity = addQuantity(c.Lines[i].Quantity, 1)
		c.recompute()
		return
	}

	c.Lines = append(c.Lines, LineItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.PriceFor(c.IsAC),
		Quantity:   1,
	})
	c.recompute()
}

// ChangeQuantity adds delta to a line, never going below one.
func (c *Cart) ChangeQuantity(menuItemID string, delta int) error {
	i := c.index(menuItemID)
	if i < 0 {
		return ErrLineNotFound
	}

	c.Lines[i].Quantity = addQuantity(c.Lines[i].Quantity, delta)
	c.recompute()
	return nil
}

// addQuantity returns q+delta clamped to [1, math.MaxInt].
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	if q += delta; q < 1 {
		return 1
	}
	return q
}

func (c *Cart) SetNotes(menuItemID, notes string) error {
	i := c.index(menuItemID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines[i].Notes = strings.TrimSpace(notes)
	return nil
}

// Remove drops a line entirely.
func (c *Cart) Remove(menuItemID string) error {
	i := c.index(menuItemID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.recompute()
	return nil
}

// Validate checks the cart is ready to submit for tableNumber.
func (c *Cart) Validate(tableNumber string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(tableNumber) == "" {
		errs["tableNumber"] = "Please enter table number"
	}
	if len(c.Lines) == 0 {
		errs["items"] = "Add items to order"
	}
	return errs
}

// ToOrder snapshots the cart as a pending order.
func (c *Cart) ToOrder(tableNumber string, now time.Time) Order {
	lines := append([]LineItem(nil), c.Lines...)
	return Order{
		TableNumber: strings.TrimSpace(tableNumber),
		IsAC:        c.IsAC,
		Items:       lines,
		Total:       Total(lines),
		Status:      StatusPending,
		CreatedAt:   now,
	}
}

func (c *Cart) index(menuItemID string) int {
	return collection.IndexOf(c.Lines, func(l LineItem) bool { return l.MenuItemID == menuItemID })
}

func (c *Cart) recompute() {
	c.Total = Total(c.Lines)
}
