package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"pizzacost/internal/handlers"
	applog "pizzacost/internal/log"
	"pizzacost/internal/metrics"
	"pizzacost/internal/pricing"
)

const (
	// DefaultSessionLifetime keeps margin overrides and the theme for a working day.
	DefaultSessionLifetime = 12 * time.Hour
	// DefaultCookieName names the cookie carrying the calculator session.
	DefaultCookieName = "pizzacost_session"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config holds what the pricing service needs to start.
type Config struct {
	Addr     string
	Session  SessionConfig
	Database *gorm.DB
	Pricing  pricing.Settings
	// Metrics receives request and operation metrics. A registry is created when nil.
	Metrics *metrics.Recorder
}

// SessionConfig sets the cookie that stores per-visitor margin overrides.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// withDefaults fills the zero fields of c.
func (c SessionConfig) withDefaults() SessionConfig {
	if c.Lifetime <= 0 {
		c.Lifetime = DefaultSessionLifetime
	}
	if strings.TrimSpace(c.CookieName) == "" {
		c.CookieName = DefaultCookieName
	}
	return c
}

// newSessionManager builds the in-memory session store behind the margin overrides.
func newSessionManager(cfg SessionConfig) *scs.SessionManager {
	cfg = cfg.withDefaults()

	sm := scs.New()
	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.Domain = cfg.CookieDomain
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = cfg.CookieSecure

	applog.Debug(context.Background(), "calculator sessions ready",
		"lifetime", cfg.Lifetime.String(),
		"cookie", cfg.CookieName,
		"secure", cfg.CookieSecure,
	)
	return sm
}

// Server serves the pricing API and HTML pages.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New configures the handlers and assembles the middleware chain.
func New(cfg Config) (*Server, error) {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	sm := newSessionManager(cfg.Session)
	handlers.Configure(sm, cfg.Database, cfg.Pricing, cfg.Metrics)

	applog.Debug(context.Background(), "pricing handlers configured",
		"addr", cfg.Addr,
		"defaultMargin", cfg.Pricing.DefaultMargin,
		"defaultBallWeight", cfg.Pricing.DefaultBallWeight,
	)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           sm.LoadAndSave(newRouter(cfg.Metrics)),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Start listens on the configured address until Stop is called.
func (s *Server) Start() error {
	applog.Info(context.Background(), "pricing service listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains in-flight requests, giving up after shutdownTimeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	applog.Info(ctx, "pricing service draining")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
