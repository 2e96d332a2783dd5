package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
	"github.com/shashiranjanraj/dinein/pkg/collection"
	"github.com/shashiranjanraj/dinein/pkg/logger"
	"github.com/shashiranjanraj/dinein/pkg/metrics"
)

// SummaryPath is where a client goes after submitting an order.
const SummaryPath = "/order-summary"

// OrderCatalog is the full menu priced for one room type.
type OrderCatalog struct {
	Room  string      `json:"room"`
	Items []MenuEntry `json:"items"`
}

// Submission is the result of a successful order submit.
type Submission struct {
	Order models.Order `json:"order"`
	Next  string       `json:"next"`
}

type OrderTaker struct {
	catalog repositories.CatalogStore
	orders  repositories.OrderStore
	carts   repositories.CartStore
	images  ImageLinker
	notify  Notifier
	now     func() time.Time
}

func NewOrderTaker(
	catalog repositories.CatalogStore,
	orders repositories.OrderStore,
	carts repositories.CartStore,
	images ImageLinker,
	notify Notifier,
) *OrderTaker {
	if notify == nil {
		notify = NopNotifier()
	}
	return &OrderTaker{
		catalog: catalog,
		orders:  orders,
		carts:   carts,
		images:  images,
		notify:  notify,
		now:     time.Now,
	}
}

// Open starts an empty cart for the given room type.
func (s *OrderTaker) Open(ctx context.Context, isAC bool) (*models.Cart, error) {
	cart := models.NewCart(uuid.NewString(), isAC, s.now())
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *OrderTaker) Cart(ctx context.Context, id string) (*models.Cart, error) {
	return s.carts.Get(ctx, id)
}

// Catalog lists every menu item with the price for cartID's room. An empty
// cartID prices for the non-AC room, which is where a new cart starts.
func (s *OrderTaker) Catalog(ctx context.Context, cartID string) (OrderCatalog, error) {
	isAC := false
	if cartID != "" {
		cart, err := s.carts.Get(ctx, cartID)
		if err != nil {
			return OrderCatalog{}, err
		}
		isAC = cart.IsAC
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return OrderCatalog{}, fmt.Errorf("order taker: catalog: %w", err)
	}
	return OrderCatalog{
		Room: models.RoomName(isAC),
		Items: collection.Map(items, func(m models.MenuItem) MenuEntry {
			return newEntry(m, isAC, s.images)
		}),
	}, nil
}

// SetRoom switches the room used for lines added from now on.
func (s *OrderTaker) SetRoom(ctx context.Context, cartID string, isAC bool) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		c.SetRoom(isAC)
		return nil
	})
}

// Add puts one of menuItemID into the cart.
func (s *OrderTaker) Add(ctx context.Context, cartID, menuItemID string) (*models.Cart, error) {
	item, err := repositories.FindItem(ctx, s.catalog, menuItemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.Invalid(map[string]string{"menuItemId": "The selected menu item is invalid."})
		}
		return nil, err
	}
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		c.Add(item)
		return nil
	})
}

func (s *OrderTaker) ChangeQuantity(ctx context.Context, cartID, menuItemID string, delta int) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		return c.ChangeQuantity(menuItemID, delta)
	})
}

func (s *OrderTaker) SetNotes(ctx context.Context, cartID, menuItemID, notes string) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		return c.SetNotes(menuItemID, notes)
	})
}

func (s *OrderTaker) Remove(ctx context.Context, cartID, menuItemID string) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(c *models.Cart) error {
		return c.Remove(menuItemID)
	})
}

// Submit turns the cart into a pending order. An empty table number or cart
// writes nothing.
func (s *OrderTaker) Submit(ctx context.Context, cartID, tableNumber string) (Submission, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return Submission{}, err
	}

	if errs := cart.Validate(tableNumber); len(errs) > 0 {
		return Submission{}, models.Invalid(errs)
	}

	order, err := s.orders.Create(ctx, cart.ToOrder(tableNumber, s.now()))
	if err != nil {
		return Submission{}, fmt.Errorf("order taker: submit: %w", err)
	}

	log := logger.WithCtx(ctx)
	if err := s.carts.Delete(ctx, cartID); err != nil {
		log.Warn("order taker: cart not cleared", "cart", cartID, "error", err)
	}

	metrics.OrdersSubmitted.WithLabelValues(order.Room()).Inc()
	log.Info("order taker: order submitted",
		"order", order.ID, "table", order.TableNumber, "room", order.Room(), "total", order.Total)
	s.notify.OrderCreated(order)

	return Submission{Order: order, Next: SummaryPath}, nil
}

func (s *OrderTaker) mutate(ctx context.Context, cartID string, fn func(*models.Cart) error) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = s.now()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
