// Package kernel builds the root HTTP handler: the global middleware stack
// followed by the application routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/dinein/pkg/metrics"
	"github.com/shashiranjanraj/dinein/pkg/middleware"
	"github.com/shashiranjanraj/dinein/pkg/reqid"
	"github.com/shashiranjanraj/dinein/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel applies the global middleware, then calls every register
// callback in order.
func NewHTTPKernel(register ...func(*router.Router)) *HTTPKernel {
	r := router.New()

	// Outermost first:
	//  1. metrics, so latency covers everything below
	//  2. recovery
	//  3. request id, before anything logs
	//  4. request logger
	//  5. CORS
	//  6. rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	for _, fn := range register {
		fn(r)
	}
	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Router() *router.Router { return k.router }
