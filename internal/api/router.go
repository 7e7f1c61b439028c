package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/metorial/homewatch/internal/feed"
	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/store"
	"github.com/metorial/homewatch/internal/telemetry"
)

type Options struct {
	Store       *store.Store
	Monitor     *telemetry.Monitor
	Hub         *feed.Hub
	Logger      *zap.Logger
	CORSOrigins []string
	Now         func() time.Time
}

// Server exposes the dashboard sections over HTTP
type Server struct {
	router  chi.Router
	store   *store.Store
	monitor *telemetry.Monitor
	hub     *feed.Hub
	logger  *zap.Logger
	now     func() time.Time
}

func NewServer(opts Options) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		store:   opts.Store,
		monitor: opts.Monitor,
		hub:     opts.Hub,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.monitor == nil {
		s.monitor = telemetry.NewMonitor(telemetry.DefaultStaleAfter, telemetry.DefaultDisconnectedAfter)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.setupRoutes(origins)
	return s
}

func (s *Server) setupRoutes(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Middleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.Get("/health", s.healthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.healthCheck)
		r.Get("/overview", s.getOverview)

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.listDevices)
			r.Patch("/{id}", s.patchDevice)
		})

		r.Route("/automations", func(r chi.Router) {
			r.Get("/", s.listAutomations)
			r.Post("/{id}/toggle", s.toggleAutomation)
		})

		r.Post("/scenes/{id}/activate", s.activateScene)

		r.Get("/performance", s.getPerformance)

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.listAlerts)
			r.Post("/{id}/read", s.markAlertRead)
			r.Post("/{id}/resolve", s.resolveAlert)
			r.Delete("/{id}", s.deleteAlert)
		})

		r.Get("/activity", s.listActivity)

		if s.hub != nil {
			r.Get("/feed", feed.Handler(s.hub, s.store))
		}
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}
