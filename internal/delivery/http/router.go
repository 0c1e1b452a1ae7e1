package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"hotel-frontdesk/internal/delivery/http/handler"
	"hotel-frontdesk/internal/delivery/http/middleware"
)

type Router struct {
	router         *mux.Router
	relayHandler   *handler.RelayHandler
	panelHandler   *handler.BookingPanelHandler
	sessionHandler *handler.SessionHandler
	auditHandler   *handler.EditAuditHandler
	cacheHandler   *handler.CacheHandler
	authMiddleware *middleware.AuthMiddleware
	relayCORS      *middleware.CORSMiddleware
	dashboardCORS  *middleware.CORSMiddleware
}

func NewRouter(
	relayHandler *handler.RelayHandler,
	panelHandler *handler.BookingPanelHandler,
	sessionHandler *handler.SessionHandler,
	auditHandler *handler.EditAuditHandler,
	cacheHandler *handler.CacheHandler,
	authMiddleware *middleware.AuthMiddleware,
	relayCORS *middleware.CORSMiddleware,
	dashboardCORS *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		relayHandler:   relayHandler,
		panelHandler:   panelHandler,
		sessionHandler: sessionHandler,
		auditHandler:   auditHandler,
		cacheHandler:   cacheHandler,
		authMiddleware: authMiddleware,
		relayCORS:      relayCORS,
		dashboardCORS:  dashboardCORS,
	}
}

func (r *Router) Setup() *mux.Router {
	// Relay surface: one stable endpoint for all booking reads/writes,
	// plus liveness. Any method is forwarded.
	relay := r.router.PathPrefix("/api").Subrouter()
	relay.Use(r.relayCORS.Handle)
	relay.PathPrefix("").HandlerFunc(r.relayHandler.Relay)

	r.router.HandleFunc("/health", r.relayHandler.Health).Methods(http.MethodGet)

	// Dashboard surface under /v1.
	api := r.router.PathPrefix("/v1").Subrouter()
	api.Use(r.dashboardCORS.Handle)

	// Session routes (public)
	api.HandleFunc("/auth/login", r.sessionHandler.Login).Methods(http.MethodPost)

	// Session routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.sessionHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.sessionHandler.CurrentOperator).Methods(http.MethodGet)

	// Booking panel routes (protected)
	panels := api.PathPrefix("/panels").Subrouter()
	panels.Use(r.authMiddleware.Authenticate)
	panels.HandleFunc("", r.panelHandler.OpenPanel).Methods(http.MethodPost)
	panels.HandleFunc("/{id}", r.panelHandler.GetPanel).Methods(http.MethodGet)
	panels.HandleFunc("/{id}/retry", r.panelHandler.RetryLoad).Methods(http.MethodPost)
	panels.HandleFunc("/{id}/edit", r.panelHandler.EnterEdit).Methods(http.MethodPost)
	panels.HandleFunc("/{id}/submit", r.panelHandler.Submit).Methods(http.MethodPost)
	panels.HandleFunc("/{id}/cancel", r.panelHandler.CancelEdit).Methods(http.MethodPost)
	panels.HandleFunc("/{id}/close", r.panelHandler.ClosePanel).Methods(http.MethodPost)

	// Edit audit trail (protected)
	audits := api.PathPrefix("/audit-logs").Subrouter()
	audits.Use(r.authMiddleware.Authenticate)
	audits.HandleFunc("", r.auditHandler.ListAudits).Methods(http.MethodGet)

	// Cache staleness probes (protected)
	caches := api.PathPrefix("/caches").Subrouter()
	caches.Use(r.authMiddleware.Authenticate)
	caches.HandleFunc("/{tag}", r.cacheHandler.GetStaleness).Methods(http.MethodGet)
	caches.HandleFunc("/{tag}/clear", r.cacheHandler.ClearStaleness).Methods(http.MethodPost)

	return r.router
}
