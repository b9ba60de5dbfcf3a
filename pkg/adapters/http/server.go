// Package http exposes the workflow engine over a small JSON API: direct
// build/validate/score operations plus the refinement pipeline when one is
// configured.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nvalerio/flowforge/internal/logging"
	"github.com/nvalerio/flowforge/pkg/adapters/memory"
	"github.com/nvalerio/flowforge/pkg/assemble"
	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/ports"
	"github.com/nvalerio/flowforge/pkg/refine"
	"github.com/nvalerio/flowforge/pkg/score"
	"github.com/nvalerio/flowforge/pkg/validate"
)

// ReferenceLibrary is a retriever that also accepts new references. Both
// the in-memory and redis libraries satisfy it.
type ReferenceLibrary interface {
	ports.Retriever
	Put(ctx context.Context, ref ports.Reference) error
}

// Service wires the engine pieces behind the HTTP surface.
type Service struct {
	builder   *assemble.Builder
	repairer  *refine.Repairer
	scorer    *score.Scorer
	validator *validate.Validator
	pipeline  *refine.Pipeline
	library   ReferenceLibrary
	logger    *slog.Logger
	metrics   http.Handler
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPipeline enables the /api/refine endpoint. Without it the endpoint
// reports the capability as unavailable.
func WithPipeline(p *refine.Pipeline) ServiceOption {
	return func(s *Service) { s.pipeline = p }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithScorer overrides the default scorer.
func WithScorer(sc *score.Scorer) ServiceOption {
	return func(s *Service) { s.scorer = sc }
}

// WithMetricsHandler overrides the /metrics handler. Defaults to the
// process-global promhttp handler.
func WithMetricsHandler(h http.Handler) ServiceOption {
	return func(s *Service) { s.metrics = h }
}

// WithLibrary sets the reference library behind /api/references. Defaults
// to the in-memory library with the built-in seed set.
func WithLibrary(lib ReferenceLibrary) ServiceOption {
	return func(s *Service) { s.library = lib }
}

// NewService creates a service over the built-in catalog.
func NewService(opts ...ServiceOption) *Service {
	cat := catalog.Default()
	v := validate.New(cat)
	s := &Service{
		builder:   assemble.NewBuilder(),
		validator: v,
		logger:    logging.NewNop(),
		metrics:   promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scorer == nil {
		s.scorer = score.New(cat, v, score.DefaultConfig())
	}
	if s.repairer == nil {
		s.repairer = NewDefaultRepairer(cat, s.logger)
	}
	if s.library == nil {
		s.library = memory.Builtin()
	}
	return s
}

// NewDefaultRepairer builds the repairer the service uses when none is
// injected.
func NewDefaultRepairer(cat *catalog.Catalog, logger *slog.Logger) *refine.Repairer {
	return refine.NewRepairer(cat, refine.WithRepairLogger(logger))
}

// Handler returns the chi router for the service.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(enableCORS)

	r.Post("/api/generate", s.handleGenerate)
	r.Post("/api/refine", s.handleRefine)
	r.Post("/api/validate", s.handleValidate)
	r.Get("/api/references", s.handleListReferences)
	r.Post("/api/references", s.handlePutReference)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GenerateRequest is the /api/generate body: a flat requirements record
// plus an optional scoring tier.
type GenerateRequest struct {
	Requirements map[string]any `json:"requirements"`
	Tier         string         `json:"tier,omitempty"`
}

// GenerateResponse pairs the composed workflow with its quality report.
type GenerateResponse struct {
	Workflow *domain.Workflow `json:"workflow"`
	Report   score.Report     `json:"report"`
}

func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	req, err := assemble.Decode(body.Requirements)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tier, err := score.ParseTier(body.Tier)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	wf := s.repairer.Repair(s.builder.Build(req))
	report := s.scorer.Score(wf, tier)
	s.logger.Info("workflow generated",
		"name", wf.Name, "nodes", len(wf.Nodes), "score", report.Score)

	s.writeJSON(w, http.StatusOK, GenerateResponse{Workflow: wf, Report: report})
}

func (s *Service) handleRefine(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no synthesis collaborator configured")
		return
	}
	var req refine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Intent == "" {
		s.writeError(w, http.StatusBadRequest, "intent is required")
		return
	}

	res := s.pipeline.Generate(r.Context(), req)
	s.writeJSON(w, http.StatusOK, res)
}

// ValidateRequest is the /api/validate body.
type ValidateRequest struct {
	Workflow *domain.Workflow `json:"workflow"`
	Tier     string           `json:"tier,omitempty"`
}

// ValidateResponse carries the structural findings and the quality report.
type ValidateResponse struct {
	Findings validate.GraphResult `json:"findings"`
	Report   score.Report         `json:"report"`
}

func (s *Service) handleValidate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	tier, err := score.ParseTier(body.Tier)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ValidateResponse{
		Findings: s.validator.ValidateGraph(body.Workflow),
		Report:   s.scorer.Score(body.Workflow, tier),
	})
}

func (s *Service) handleListReferences(w http.ResponseWriter, r *http.Request) {
	q := ports.Query{
		Intent: r.URL.Query().Get("intent"),
		Tier:   r.URL.Query().Get("tier"),
	}
	if integ := r.URL.Query().Get("integrations"); integ != "" {
		q.Integrations = strings.Split(integ, ",")
	}

	refs, err := s.library.Retrieve(r.Context(), q)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if refs == nil {
		refs = []ports.Reference{}
	}
	s.writeJSON(w, http.StatusOK, refs)
}

func (s *Service) handlePutReference(w http.ResponseWriter, r *http.Request) {
	var ref ports.Reference
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if ref.Name == "" {
		s.writeError(w, http.StatusBadRequest, "reference name is required")
		return
	}
	if err := s.library.Put(r.Context(), ref); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, ref)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
