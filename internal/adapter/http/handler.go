package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"crowdfund/internal/auth"
	"crowdfund/internal/core/port"
	"crowdfund/internal/metrics"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP that exposes the campaign use case as a JSON API.
type Handler struct {
	svc     port.CampaignUseCase
	tokens  *auth.TokenManager
	metrics *metrics.Metrics
	logger  *slog.Logger
	router  chi.Router
}

// NewHandler creates a handler with all routes configured. tokens
// authenticates callers; m may be nil to disable instrumentation.
func NewHandler(svc port.CampaignUseCase, tokens *auth.TokenManager, m *metrics.Metrics, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, tokens: tokens, metrics: m, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, h.instrument)

	r.Get("/healthz", h.handleHealth)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleDeployedCampaigns)

			r.Route("/{address}", func(r chi.Router) {
				r.Get("/", h.handleSummary)
				r.Get("/manager", h.handleManager)
				r.Get("/approvers/{identity}", h.handleApprover)
				r.Post("/contributions", h.handleContribute)

				r.Get("/requests", h.handleListRequests)
				r.Post("/requests", h.handleCreateRequest)
				r.Get("/requests/{index}", h.handleGetRequest)
				r.Post("/requests/{index}/approve", h.handleApproveRequest)
				r.Post("/requests/{index}/finalize", h.handleFinalizeRequest)
			})
		})
		r.Get("/accounts/{address}/balance", h.handleAccountBalance)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
