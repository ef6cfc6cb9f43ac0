package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/httpx"
	"github.com/readspacehq/readspace/pkg/jwtx"
	"github.com/readspacehq/readspace/pkg/slogx"

	_ "github.com/readspacehq/readspace/api/profiles" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *Metrics

	store           store.Store
	TokenService    *service.TokenService
	AccountService  *service.AccountService
	SignupService   *service.SignupService
	ProfileService  *service.ProfileService
	DocumentService *service.DocumentService
	BackfillService *service.BackfillService
}

func NewRouter(
	signer *jwtx.Signer,
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      metrics,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfiles()
	r.registerDocuments()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Readspace Profiles Service API
//	@version		0.1.0
//	@description	Multi-profile account service: accounts own up to ten named profiles, every
//	@description	profile-scoped resource is guarded by an ownership gate, and a compatibility
//	@description	backfill migrates pre-profile data onto profiles.
//
//	@contact.name				Readspace Team
//	@contact.url				https://github.com/readspacehq/readspace
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

func (r *Router) registerAccounts() {
	// POST /signup - strict rate limit by IP (public account creation)
	signupHandler := &SignupHandler{SignupService: r.SignupService, Metrics: r.metrics}
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(signupHandler,
			r.metrics.instrument("/v1/signup"),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (brute force prevention)
	loginHandler := &LoginHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			r.metrics.instrument("/v1/login"),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	meHandler := &MeHandler{AccountService: r.AccountService, ProfileService: r.ProfileService}
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(meHandler,
			r.metrics.instrument("/v1/me"),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{ProfileService: r.ProfileService}

	authed := func(route string, fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			r.metrics.instrument(route),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(limit),
		)
	}

	r.Mux.Handle("GET /v1/profiles", authed("/v1/profiles", h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/profiles", authed("/v1/profiles", h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/profiles/{id}", authed("/v1/profiles/{id}", h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/profiles/{id}", authed("/v1/profiles/{id}", h.HandleDelete, httpx.ModerateLimit))

	// Switch is called by every device on startup; keep it lenient.
	r.Mux.Handle("POST /v1/profiles/{id}/switch",
		authed("/v1/profiles/{id}/switch", h.HandleSwitch, httpx.LenientLimit))
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{DocumentService: r.DocumentService, Metrics: r.metrics}

	r.Mux.Handle("GET /v1/documents",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.metrics.instrument("/v1/documents"),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/documents",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.metrics.instrument("/v1/documents"),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &BackfillHandler{BackfillService: r.BackfillService, Metrics: r.metrics}

	// POST /admin/backfill - admin only, moderate limit (long-running batch)
	r.Mux.Handle("POST /v1/admin/backfill",
		httpx.Chain(h,
			r.metrics.instrument("/v1/admin/backfill"),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
