package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/api/apierr"
	"github.com/mcoot/gamehub/internal/api/handler"
	apimiddleware "github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/middleware"
	"github.com/mcoot/gamehub/internal/services/account"
	"github.com/mcoot/gamehub/internal/services/catalog"
	"github.com/mcoot/gamehub/internal/services/market"
	"github.com/mcoot/gamehub/internal/storage"
)

const healthTimeout = 2 * time.Second

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Storage  storage.Storage
	Accounts *account.Store
	Catalog  *catalog.Store
	Market   *market.Service
	// CORSOrigins lists browser origins allowed to call the API.
	// Empty means no CORS headers are sent.
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.Accounts)
	gamesHandler := handler.NewGamesHandler(cfg.Accounts, cfg.Catalog)
	marketHandler := handler.NewMarketHandler(cfg.Accounts, cfg.Market)

	// Create middleware
	sessionMiddleware := apimiddleware.RequireSession(cfg.Accounts)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Session routes (no session required)
	api.HandleFunc("/session", accountHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/session/login", accountHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/session", accountHandler.Logout).Methods(http.MethodDelete)

	// Account routes
	api.HandleFunc("/accounts", accountHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/accounts/availability", accountHandler.Availability).Methods(http.MethodGet)

	me := api.PathPrefix("/accounts/me").Subrouter()
	me.Use(sessionMiddleware)
	me.HandleFunc("", accountHandler.Delete).Methods(http.MethodDelete)
	me.HandleFunc("/currency", accountHandler.UpdateCurrency).Methods(http.MethodPost)
	me.HandleFunc("/items", accountHandler.PurchaseItem).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(sessionMiddleware)
	admin.HandleFunc("/currency", accountHandler.GrantCurrency).Methods(http.MethodPost)

	// Game reads (no session required)
	api.HandleFunc("/games", gamesHandler.List).Methods(http.MethodGet)

	// Game routes (session required). /games/mine is registered before /games/{id}.
	games := api.PathPrefix("/games").Subrouter()
	games.Use(sessionMiddleware)
	games.HandleFunc("", gamesHandler.Publish).Methods(http.MethodPost)
	games.HandleFunc("/mine", gamesHandler.Mine).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gamesHandler.Update).Methods(http.MethodPatch)
	games.HandleFunc("/{id}", gamesHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/badges", gamesHandler.AddBadge).Methods(http.MethodPost)
	games.HandleFunc("/{id}/badges/{badge_id}", gamesHandler.RemoveBadge).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/vote", gamesHandler.Vote).Methods(http.MethodPost)

	api.HandleFunc("/games/{id}", gamesHandler.Get).Methods(http.MethodGet)

	// Market routes
	api.HandleFunc("/market/items", marketHandler.List).Methods(http.MethodGet)
	market := api.PathPrefix("/market").Subrouter()
	market.Use(sessionMiddleware)
	market.HandleFunc("/items/{id}/purchase", marketHandler.Buy).Methods(http.MethodPost)

	// Health check endpoint (no session)
	api.HandleFunc("/health", healthHandler(cfg.Storage)).Methods(http.MethodGet)

	if len(cfg.CORSOrigins) == 0 {
		return r
	}
	// Wraps the whole router so preflight requests are answered before mux
	// rejects the OPTIONS method.
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(r)
}

func healthHandler(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			apierr.WriteError(w, apierr.NewStorageUnavailableError())
			return
		}
		response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
	}
}
