package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/internal/session"
	"github.com/mauriciosalazarsh/anuncia/internal/store"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
	"github.com/mauriciosalazarsh/anuncia/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	secureCookie bool

	store    store.Store
	sessions session.Store

	AuthService     *service.AuthService
	UserService     *service.UserService
	ProductService  *service.ProductService
	DocumentService *service.DocumentService
}

func NewRouter(
	buildVersion string,
	secureCookie bool,
	st store.Store,
	sessions session.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		secureCookie: secureCookie,
		store:        st,
		sessions:     sessions,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerProducts()
	r.registerDocuments()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		SecureCookie: r.secureCookie,
	}

	// Credential endpoints carry strict limits to slow brute force. Login
	// is additionally keyed by the submitted email for form posts, so one
	// account can't be hammered from a single IP against many addresses.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.Logout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Session introspection for the frontend; validated but not limited
	// per-user since unauthenticated callers hit it on every page load.
	r.Mux.Handle("GET /auth/session",
		httpx.Chain(http.HandlerFunc(h.Session),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			SessionMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /users/{id}", secured(h.Get))
	r.Mux.Handle("PUT /users/{id}", secured(h.Update))
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{ProductService: r.ProductService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			SessionMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			SessionMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /products", read(h.List))
	r.Mux.Handle("POST /products", write(h.Create))
	r.Mux.Handle("GET /products/{id}", read(h.Get))
	r.Mux.Handle("PUT /products/{id}", write(h.Update))
	r.Mux.Handle("DELETE /products/{id}", write(h.Delete))
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{DocumentService: r.DocumentService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			SessionMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			SessionMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /documents", read(h.List))
	r.Mux.Handle("POST /documents", write(h.Create))
	r.Mux.Handle("GET /documents/{id}", read(h.Get))
	r.Mux.Handle("PUT /documents/{id}", write(h.Update))
	r.Mux.Handle("DELETE /documents/{id}", write(h.Delete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions))
}
