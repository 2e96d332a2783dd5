package routes

import (
	"net/http"

	"github.com/shashiranjanraj/dinein/app/controllers"
	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/pkg/ctx"
	"github.com/shashiranjanraj/dinein/pkg/metrics"
	"github.com/shashiranjanraj/dinein/pkg/router"
	"github.com/shashiranjanraj/dinein/pkg/ws"
)

// Services are the handlers' dependencies. Zero values are enough for
// listing routes.
type Services struct {
	Admin   *services.MenuAdmin
	Browser *services.MenuBrowser
	Taker   *services.OrderTaker
	Summary *services.OrderSummary
	Images  *services.ImageStore
	Feed    *ws.Hub
}

func RegisterAPI(r *router.Router, s Services) {
	upload := controllers.NewUploadController(s.Images)
	admin := controllers.NewAdminController(s.Admin)
	menu := controllers.NewMenuController(s.Browser)
	carts := controllers.NewCartController(s.Taker)
	orders := controllers.NewOrderController(s.Summary)

	r.Get("/health", "health", ctx.Wrap(func(c *ctx.Context) {
		c.Success(map[string]string{"status": "ok"})
	}))
	r.Handle("/metrics", "metrics", metrics.Handler())

	r.Post("/upload", "images.upload", ctx.Wrap(upload.Store))
	r.Get("/menuImages/{file}", "images.show", ctx.Wrap(upload.Show))

	api := r.Group("/api")
	api.Get("/menu", "menu.index", ctx.Wrap(menu.Index))

	adminMenu := api.Group("/admin/menu")
	adminMenu.Get("/", "admin.menu.index", ctx.Wrap(admin.Index))
	adminMenu.Post("/", "admin.menu.store", ctx.Wrap(admin.Store))
	adminMenu.Get("/{id}", "admin.menu.show", ctx.Wrap(admin.Show))
	adminMenu.Delete("/{id}", "admin.menu.destroy", ctx.Wrap(admin.Destroy))

	api.Get("/order/catalog", "order.catalog", ctx.Wrap(carts.Catalog))

	cart := api.Group("/carts")
	cart.Post("/", "carts.open", ctx.Wrap(carts.Open))
	cart.Get("/{id}", "carts.show", ctx.Wrap(carts.Show))
	cart.Put("/{id}/room", "carts.room", ctx.Wrap(carts.Room))
	cart.Post("/{id}/items", "carts.items.add", ctx.Wrap(carts.AddItem))
	cart.Patch("/{id}/items/{itemId}", "carts.items.update", ctx.Wrap(carts.UpdateItem))
	cart.Delete("/{id}/items/{itemId}", "carts.items.remove", ctx.Wrap(carts.RemoveItem))
	cart.Post("/{id}/submit", "carts.submit", ctx.Wrap(carts.Submit))

	order := api.Group("/orders")
	order.Get("/summary", "orders.summary", ctx.Wrap(orders.Summary))
	order.Post("/{id}/served", "orders.served", ctx.Wrap(orders.Served))
	order.Post("/{id}/cancelled", "orders.cancelled", ctx.Wrap(orders.Cancelled))

	r.Get("/orders/print", "orders.print", ctx.Wrap(orders.Print))
	r.Handle("/ws/orders", "orders.feed", feed(s.Feed))
}

func feed(hub *ws.Hub) http.Handler {
	if hub == nil {
		return http.NotFoundHandler()
	}
	return ws.Handler(hub)
}
