package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/jwtx"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"

	_ "github.com/aussiebroadwan/hwlend/api/lending" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles applied per route class.
type Limits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultLimits returns the httpx profiles, including RATELIMIT_* overrides.
func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	Limits      Limits
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AccountService   *service.AccountService
	SessionService   *service.SessionService
	MFAService       *service.MFAService
	HardwareService  *service.HardwareService
	ProjectService   *service.ProjectService
	InventoryService *service.InventoryService
	UsageService     *service.UsageService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		Limits:       DefaultLimits(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerMFA()
	r.registerHardware()
	r.registerProjects()
	r.registerInventory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			hwlend Hardware Lending API
//	@version		0.1.0
//	@description	Multi-tenant hardware lending: shared hardware sets, projects that check units out and in, and a per-project usage log.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/hwlend
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication, the given scopes and a
// per-user rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig, scopes ...string) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	if len(scopes) > 0 {
		mws = append(mws, httpx.RequireAllScopes(scopes...))
	}
	mws = append(mws, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{
		AccountService: r.AccountService,
		SessionService: r.SessionService,
	}

	// Public credential endpoints are limited by IP and username together
	r.Mux.Handle("POST /v1/accounts",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
		),
	)
	r.Mux.Handle("POST /v1/accounts/password-reset",
		httpx.Chain(http.HandlerFunc(h.HandleRequestReset),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
		),
	)
	r.Mux.Handle("POST /v1/accounts/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirmReset),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)

	r.Mux.Handle("POST /v1/accounts/password", r.secured(h.HandleChangePassword, r.Limits.Strict))
	r.Mux.Handle("DELETE /v1/accounts/me", r.secured(h.HandleDeleteAccount, r.Limits.Strict))
	r.Mux.Handle("GET /v1/accounts/me", r.secured(h.HandleMe, r.Limits.Lenient))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /v1/mfa/totp/enroll", r.secured(h.HandleEnroll, r.Limits.Moderate))
	// TOTP guesses are limited hard
	r.Mux.Handle("POST /v1/mfa/totp/confirm", r.secured(h.HandleConfirm, r.Limits.Strict))
	r.Mux.Handle("DELETE /v1/mfa/totp", r.secured(h.HandleDisable, r.Limits.Strict))
}

func (r *Router) registerHardware() {
	h := &HardwareHandler{HardwareService: r.HardwareService}

	r.Mux.Handle("POST /v1/hardware", r.secured(h.HandleCreate, r.Limits.Moderate, service.ScopeHardwareAdmin))
	r.Mux.Handle("GET /v1/hardware", r.secured(h.HandleList, r.Limits.Lenient, service.ScopeInventoryRead))
	r.Mux.Handle("GET /v1/hardware/{name}", r.secured(h.HandleGet, r.Limits.Lenient, service.ScopeInventoryRead))
	r.Mux.Handle("GET /v1/inventory", r.secured(h.HandleInventory, r.Limits.Lenient, service.ScopeHardwareAdmin))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}
	read, write := service.ScopeInventoryRead, service.ScopeInventoryWrite

	r.Mux.Handle("POST /v1/projects", r.secured(h.HandleCreate, r.Limits.Moderate, write))
	r.Mux.Handle("GET /v1/projects", r.secured(h.HandleList, r.Limits.Lenient, read))
	r.Mux.Handle("GET /v1/projects/{id}", r.secured(h.HandleGet, r.Limits.Lenient, read))
	r.Mux.Handle("PATCH /v1/projects/{id}", r.secured(h.HandleUpdate, r.Limits.Moderate, write))
	r.Mux.Handle("DELETE /v1/projects/{id}", r.secured(h.HandleDelete, r.Limits.Moderate, write))
	r.Mux.Handle("POST /v1/projects/{id}/join", r.secured(h.HandleJoin, r.Limits.Moderate, write))
	r.Mux.Handle("POST /v1/projects/{id}/leave", r.secured(h.HandleLeave, r.Limits.Moderate, write))
	r.Mux.Handle("POST /v1/projects/{id}/invites", r.secured(h.HandleInvite, r.Limits.Moderate, write))
}

func (r *Router) registerInventory() {
	h := &InventoryHandler{
		InventoryService: r.InventoryService,
		UsageService:     r.UsageService,
	}
	read, write := service.ScopeInventoryRead, service.ScopeInventoryWrite

	r.Mux.Handle("POST /v1/projects/{id}/checkout", r.secured(h.HandleCheckout, r.Limits.Moderate, write))
	r.Mux.Handle("POST /v1/projects/{id}/checkin", r.secured(h.HandleCheckin, r.Limits.Moderate, write))
	r.Mux.Handle("POST /v1/projects/{id}/transfers", r.secured(h.HandleTransfer, r.Limits.Moderate, write))
	r.Mux.Handle("GET /v1/projects/{id}/usage", r.secured(h.HandleUsage, r.Limits.Lenient, read))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}
