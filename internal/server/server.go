package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/mesoplan/internal/mcp"
	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
	"github.com/meltforce/mesoplan/internal/storage"
)

// PlanService is the planning API the handlers call. *plans.Service implements it.
type PlanService interface {
	Preview(ctx context.Context, req planner.Request) (*models.Mesocycle, error)
	SaveProfile(ctx context.Context, userID int, in plans.ProfileInput) (*storage.ProfileRecord, error)
	Profile(ctx context.Context, userID int) (*storage.ProfileRecord, error)
	PlanForUser(ctx context.Context, userID int, next *models.NextCycleConfig) (*storage.MesocycleRecord, error)
	SubmitFeedback(ctx context.Context, userID int, in plans.FeedbackInput) (*storage.FeedbackRecord, error)
	Current(ctx context.Context, userID int) (*storage.MesocycleRecord, error)
	History(ctx context.Context, userID, limit int) ([]storage.MesocycleSummary, error)
	SessionDetail(ctx context.Context, userID, week int, day models.Day) (*plans.SessionDetail, error)
	Stats(ctx context.Context, userID int) (*storage.PlanStats, error)
}

var _ PlanService = (*plans.Service)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	plans  PlanService
	users  UserStore
	whois  WhoIser
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. Requests are
// attributed to the dev user until SetTailscale is called.
func New(svc PlanService, users UserStore, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		plans:  svc,
		users:  users,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale switches identity resolution to tailnet WhoIs lookups.
func (s *Server) SetTailscale(whois WhoIser) {
	s.whois = whois
}

// SetMCP mounts ms at /mcp using the streamable HTTP transport. The MCP
// tools include writes, so the endpoint needs the API key like the mutating
// REST routes. Tool calls run as the caller resolved by the identity
// middleware.
func (s *Server) SetMCP(ms *mcpserver.MCPServer) {
	h := mcpserver.NewStreamableHTTPServer(ms,
		mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return mcp.WithUserID(ctx, userIDFromContext(r))
		}),
	)
	s.router.With(APIKeyAuth(s.apiKey), s.identity).Handle("/mcp", h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity)

		r.Get("/me", s.handleMe)
		r.Get("/splits", s.handleSplits)
		r.Post("/preview", s.handlePreview)

		r.Get("/profile", s.handleGetProfile)
		r.Get("/plans", s.handleListPlans)
		r.Get("/plans/current", s.handleCurrentPlan)
		r.Get("/plans/current/weeks/{week}/days/{day}", s.handleSessionDetail)
		r.Get("/plans/current/export", s.handleExport)
		r.Get("/stats", s.handleStats)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Put("/profile", s.handlePutProfile)
			r.Post("/plans", s.handleCreatePlan)
			r.Post("/feedback", s.handleFeedback)
		})
	})
}

// identity picks tailnet or dev identity per request so SetTailscale can be
// called after New.
func (s *Server) identity(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois == nil {
			dev.ServeHTTP(w, r)
			return
		}
		TailscaleIdentity(s.whois, s.users)(next).ServeHTTP(w, r)
	})
}
