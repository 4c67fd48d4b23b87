package rest

import (
	"log/slog"
	"net/http"

	"github.com/wordwiseapp/wordwise-backend/internal/config"
	"github.com/wordwiseapp/wordwise-backend/internal/transport/middleware"
	"github.com/wordwiseapp/wordwise-backend/pkg/ctxutil"
)

// RouterDeps holds everything the router needs to wire handlers.
type RouterDeps struct {
	Auth    authService
	Study   studyService
	Catalog catalogService
	DB      dbPinger

	TokenValidator middleware.TokenValidator
	Logger         *slog.Logger
	CORS           config.CORSConfig
	Version        string
}

// NewRouter builds the HTTP handler tree: all API routes plus health
// probes, wrapped in the standard middleware chain. Routes under
// /api/v1/me require a valid access token; auth and catalog routes
// accept anonymous requests.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	cardsHandler := NewCardsHandler(deps.Study, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	healthHandler := NewHealthHandler(deps.DB, deps.Version)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	mux.HandleFunc("GET /api/v1/knowledge", catalogHandler.ListKnowledge)
	mux.HandleFunc("GET /api/v1/knowledge/{code}", catalogHandler.GetKnowledge)
	mux.HandleFunc("GET /api/v1/card-types", catalogHandler.ListCardTypes)

	mux.HandleFunc("GET /api/v1/me", requireAuth(authHandler.Me))
	mux.HandleFunc("GET /api/v1/me/cards", requireAuth(cardsHandler.List))
	mux.HandleFunc("GET /api/v1/me/cards/due", requireAuth(cardsHandler.ListDue))
	mux.HandleFunc("POST /api/v1/me/cards/initialize", requireAuth(cardsHandler.Initialize))
	mux.HandleFunc("GET /api/v1/me/cards/{id}", requireAuth(cardsHandler.Get))
	mux.HandleFunc("POST /api/v1/me/cards/{id}/review", requireAuth(cardsHandler.Review))
	mux.HandleFunc("GET /api/v1/me/cards/{id}/history", requireAuth(cardsHandler.History))
	mux.HandleFunc("GET /api/v1/me/stats", requireAuth(cardsHandler.Stats))

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Auth(deps.TokenValidator),
	)
	return chain(mux)
}

// requireAuth rejects anonymous requests before the handler runs.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.AccountIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}
