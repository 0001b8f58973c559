// Package ops serves health and Prometheus metrics over HTTP.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aaronson2012/JAKOBOT/bot"
)

var logger = bot.GetModuleLogger("ops")

// Schedule reports the next trigger of a recurring job.
type Schedule interface {
	NextRun() (time.Time, bool)
}

type Health struct {
	Status       string     `json:"status"`
	Commands     int        `json:"commands"`
	NextForecast *time.Time `json:"next_forecast"`
	Host         *HostStats `json:"host,omitempty"`
}

type Server struct {
	registry *bot.Registry
	schedule Schedule
	metrics  prometheus.Gatherer
	host     func() *HostStats
	srv      *http.Server
}

// NewServer builds the ops server. schedule may be nil when no daily job is
// configured.
func NewServer(addr string, registry *bot.Registry, schedule Schedule) *Server {
	s := &Server{
		registry: registry,
		schedule: schedule,
		metrics:  bot.MetricsRegistry(),
		host:     snapshotHost,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.GetHealth).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{})).Methods("GET")
	return router
}

func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	h := Health{
		Status:   "ok",
		Commands: s.registry.Len(),
		Host:     s.host(),
	}
	if s.schedule != nil {
		if next, ok := s.schedule.NextRun(); ok {
			h.NextForecast = &next
		}
	}
	writeJSON(w, http.StatusOK, h)
}

// Start listens in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		logger.Infof("ops server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("ops server: %v", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
