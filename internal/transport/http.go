package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brandforge/printshop/internal/catalog"
	"github.com/brandforge/printshop/internal/handler"
	"github.com/brandforge/printshop/internal/middleware"
	"github.com/brandforge/printshop/internal/order"
	"github.com/brandforge/printshop/internal/user"
)

type Deps struct {
	UserService    user.Service
	Tokens         *user.TokenManager
	CatalogService catalog.Service
	OrderService   order.Service
	Drafts         *order.DraftRegistry
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.UserService, deps.Tokens)
	catalogHandler := handler.NewCatalogHandler(deps.CatalogService)
	draftHandler := handler.NewDraftHandler(deps.Drafts, deps.CatalogService)
	orderHandler := handler.NewOrderHandler(deps.OrderService, deps.Drafts)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Get("/products", catalogHandler.HandleListProducts)
		r.Get("/products/{id}", catalogHandler.HandleGetProduct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(deps.Tokens))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/draft", draftHandler.HandleGetDraft)
			r.Post("/draft/select", draftHandler.HandleSelectProduct)
			r.Post("/draft/quantity", draftHandler.HandleSetQuantity)
			r.Post("/draft/customizations", draftHandler.HandleSetCustomization)
			r.Post("/draft/logo", draftHandler.HandleSetLogo)
			r.Post("/draft/commit", draftHandler.HandleCommitItem)
			r.Post("/draft/cancel", draftHandler.HandleCancelItem)
			r.Post("/draft/items/{index}/remove", draftHandler.HandleRemoveItem)
			r.Post("/draft/checkout", draftHandler.HandleCheckout)
			r.Post("/draft/shipping", draftHandler.HandleSetShippingField)
			r.Post("/draft/notes", draftHandler.HandleSetNotes)
			r.Post("/draft/back", draftHandler.HandleBack)

			r.Post("/orders", orderHandler.HandleSubmitOrder)
			r.Get("/orders", orderHandler.HandleListOrders)
			r.Get("/orders/recent", orderHandler.HandleRecentOrders)
			r.Get("/orders/{id}", orderHandler.HandleGetOrder)
			r.Put("/orders/{id}/status", orderHandler.HandleUpdateOrderStatus)

			r.Get("/dashboard", orderHandler.HandleDashboard)
		})
	})

	return r
}
