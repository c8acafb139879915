package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/frontdesk/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router serves
type Handlers struct {
	Health        *HealthHandler
	Menu          *MenuHandler
	Orders        *OrderHandler
	Customization *CustomizationHandler
	Kitchen       *KitchenHandler
}

// RouterOptions configures the cross-cutting middleware
type RouterOptions struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewRouter builds the chi router with middleware and all routes
func NewRouter(h Handlers, opts RouterOptions, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.Menu.ListMenu)
		r.Get("/menu/{itemId}", h.Menu.GetMenuItem)

		r.Post("/sessions", h.Orders.CreateSession)
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Delete("/", h.Orders.CloseSession)

			r.Get("/order", h.Orders.GetOrder)
			r.Post("/order/items", h.Orders.AddItem)
			r.Patch("/order/lines/{lineId}", h.Orders.UpdateLine)
			r.Delete("/order/lines/{lineId}", h.Orders.RemoveLine)
			r.Post("/order/submit", h.Orders.SubmitOrder)

			r.Route("/customization", func(r chi.Router) {
				r.Post("/", h.Customization.Start)
				r.Get("/", h.Customization.Get)
				r.Delete("/", h.Customization.Cancel)
				r.Post("/ingredients/{ingredientId}", h.Customization.ToggleIngredient)
				r.Put("/preparation", h.Customization.SetPreparation)
				r.Post("/addons/{addOnId}", h.Customization.ToggleAddOn)
				r.Post("/quantity", h.Customization.ChangeQuantity)
				r.Put("/note", h.Customization.SetNote)
				r.Post("/confirm", h.Customization.Confirm)
			})
		})

		r.Route("/kitchen/tickets", func(r chi.Router) {
			r.Get("/", h.Kitchen.ListTickets)
			r.Get("/{ticketId}", h.Kitchen.GetTicket)
			r.Put("/{ticketId}/items/{lineId}", h.Kitchen.UpdateItemStatus)
			r.Post("/{ticketId}/cancel", h.Kitchen.CancelTicket)
		})

		r.Get("/admin/report", h.Kitchen.Report)
	})

	return r
}
