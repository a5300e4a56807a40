package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/metrics"
	"github.com/harrylevesque/storefront/internal/shop"
	"github.com/harrylevesque/storefront/internal/utils"
)

type RouterOptions struct {
	Logger         logrus.FieldLogger
	Metrics        *metrics.Metrics
	RateLimiter    *RateLimiter
	AllowedOrigins []string
}

// NewRouter wires every storefront route. /products/active is registered
// before /products/{id} so that it is not taken for a product id.
func NewRouter(svc *shop.Service, opts RouterOptions) http.Handler {
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	log := opts.Logger
	if log == nil {
		log = utils.NewNopLogger()
	}
	h := NewHandlers(svc, m, log)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log), m.Middleware)
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")

	r.HandleFunc("/users", h.Register).Methods("POST")
	r.HandleFunc("/users", h.ListUsers).Methods("GET")
	r.HandleFunc("/users/login", h.Login).Methods("POST")
	r.HandleFunc("/users/{id}/setadmin", h.PromoteUser).Methods("PUT")

	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products/active", h.ListActiveProducts).Methods("GET")
	r.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	r.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	r.HandleFunc("/products/{id}/archive", h.ArchiveProduct).Methods("PUT")

	r.HandleFunc("/orders", h.PlaceOrder).Methods("POST")
	r.HandleFunc("/orders", h.ListOrders).Methods("GET")

	r.HandleFunc("/cart", h.GetCart).Methods("GET")
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/quantity/{productId}", h.SetCartQuantity).Methods("PUT")
	r.HandleFunc("/cart/remove/{productId}", h.RemoveFromCart).Methods("DELETE")
	r.HandleFunc("/cart/subtotal", h.CartSubtotal).Methods("GET")
	r.HandleFunc("/cart/total", h.CartTotal).Methods("GET")

	return CORSMiddleware(opts.AllowedOrigins, preflightMatcher(r))(r)
}

// preflightMatcher reports whether the method named in a CORS preflight is
// routed for the request path.
func preflightMatcher(r *mux.Router) func(*http.Request) bool {
	return func(req *http.Request) bool {
		target := req.Clone(req.Context())
		target.Method = req.Header.Get("Access-Control-Request-Method")
		var match mux.RouteMatch
		return r.Match(target, &match)
	}
}
