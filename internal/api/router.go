package api

import (
	"net/http"

	apperrors "github.com/tubefetch/tubefetch/internal/errors"
	"github.com/tubefetch/tubefetch/internal/health"
	"github.com/tubefetch/tubefetch/internal/metrics"
	"github.com/tubefetch/tubefetch/internal/websocket"
)

type Router struct {
	mux *http.ServeMux

	jobHandlers     *JobHandlers
	analyzeHandlers *AnalyzeHandlers
	wsHandler       *websocket.Handler
	healthHandler   *health.Handler
	metrics         *metrics.Metrics
}

// Deps collects the collaborators the router wires up.
type Deps struct {
	Jobs    *JobHandlers
	Analyze *AnalyzeHandlers
	WS      *websocket.Handler
	Health  *health.Handler
	Metrics *metrics.Metrics
}

func NewRouter(d *Deps) *Router {
	r := &Router{
		mux:             http.NewServeMux(),
		jobHandlers:     d.Jobs,
		analyzeHandlers: d.Analyze,
		wsHandler:       d.WS,
		healthHandler:   d.Health,
		metrics:         d.Metrics,
	}
	r.setupRoutes()
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) setupRoutes() {
	// Index page
	r.mux.HandleFunc("GET /{$}", r.jobHandlers.Index)

	// Media analysis
	r.mux.HandleFunc("POST /api/v1/analyze", apperrors.HandleFunc(r.analyzeHandlers.Analyze))

	// Job lifecycle
	r.mux.HandleFunc("POST /api/v1/jobs", apperrors.HandleFunc(r.jobHandlers.CreateJob))
	r.mux.HandleFunc("GET /api/v1/jobs/{job_id}", apperrors.HandleFunc(r.jobHandlers.GetJob))
	r.mux.HandleFunc("GET /api/v1/jobs/{job_id}/file", apperrors.HandleFunc(r.jobHandlers.GetJobFile))

	// Progress feed
	r.mux.HandleFunc("GET /ws/progress", r.wsHandler.ServeWS)

	// Operational endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.LivenessHandler)
	r.mux.HandleFunc("GET /health/ready", r.healthHandler.ReadinessHandler)
	r.mux.HandleFunc("GET /metrics", r.metrics.Handler())
}
