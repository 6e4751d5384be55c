// Package api implements the lifescore REST API: questionnaire metadata,
// stateless assessments, lead capture and report downloads.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lifescore/lifescore/internal/intake"
	"github.com/lifescore/lifescore/internal/leads"
	"github.com/lifescore/lifescore/pkg/catalog"
	"github.com/lifescore/lifescore/pkg/scoring"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options wires a Handler.
type Options struct {
	Catalog     *catalog.Catalog
	Adult       *scoring.AdultEngine
	Child       *scoring.ChildEngine
	Intake      *intake.Service
	Leads       *leads.Service
	Cache       *ReportCache
	Auth        *Auth
	DB          Pinger
	CORSOrigins []string
	Logger      *zap.Logger
}

// Handler is the top-level API handler for the lifescore service.
type Handler struct {
	catalog *catalog.Catalog
	adult   *scoring.AdultEngine
	child   *scoring.ChildEngine
	intake  *intake.Service
	leads   *leads.Service
	cache   *ReportCache
	auth    *Auth
	db      Pinger
	origins []string
	logger  *zap.Logger
}

// NewHandler creates a new API handler. Missing engines and catalog fall
// back to the defaults.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		catalog: opts.Catalog,
		adult:   opts.Adult,
		child:   opts.Child,
		intake:  opts.Intake,
		leads:   opts.Leads,
		cache:   opts.Cache,
		auth:    opts.Auth,
		db:      opts.DB,
		origins: opts.CORSOrigins,
		logger:  opts.Logger,
	}
	if h.catalog == nil {
		h.catalog = catalog.Default()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.adult == nil {
		h.adult = scoring.NewAdultEngine(scoring.WithCatalog(h.catalog), scoring.WithLogger(h.logger))
	}
	if h.child == nil {
		h.child = scoring.NewChildEngine(scoring.WithCatalog(h.catalog), scoring.WithLogger(h.logger))
	}
	if h.cache == nil {
		h.cache = NewReportCache(0)
	}
	return h
}

// Routes builds the router with every API route and middleware.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(h.logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(CORS(h.origins))

	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/questions", h.handleQuestions)
		r.Post("/assessments/adult", h.handleAdultAssessment)
		r.Post("/assessments/adult/buckets", h.handleBucketAssessment)
		r.Post("/assessments/child", h.handleChildAssessment)

		if h.intake != nil {
			r.Post("/leads", h.handleCreateLead)
			r.Get("/reports/{id}", h.handleGetReport)
		}

		if h.leads != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Use(AdminAuth(h.auth))
				r.Get("/submissions", h.handleListSubmissions)
				r.Get("/stats", h.handleStats)
			})
		}
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a request body of at most 1 MB into v, rejecting unknown
// fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
