package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"preorder/internal/adapters/email"
	"preorder/internal/adapters/http/middleware"
	accountStore "preorder/internal/adapters/storage/account"
	adminStore "preorder/internal/adapters/storage/adminuser"
	preorderStore "preorder/internal/adapters/storage/preorder"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	AdminStore    adminStore.Store
	PreorderStore preorderStore.Store
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures a Server. Zero values are usable in tests.
type Options struct {
	StaticDir      string
	CSRFKey        []byte
	Secure         bool
	TrustedOrigins []string
	RatePerSecond  int
	SlowRequestMs  int
	Sender         email.Sender
	ReplyTo        string
	Pinger         Pinger
	Now            func() time.Time
}

// Server serves the landing page, the admin dashboard and their JSON APIs.
type Server struct {
	stores    Stores
	opts      Options
	sessions  *middleware.SessionStore
	limiter   *middleware.RateLimiter
	templates *templateSet
}

// NewServer parses templates and prepares session and rate-limit state.
// PRE: stores has every store set
// POST: Returns a Server whose Routes and Handler share one session store
func NewServer(stores Stores, opts Options) (*Server, error) {
	if stores.AccountStore == nil || stores.AdminStore == nil || stores.PreorderStore == nil {
		return nil, errors.New("web: all stores are required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 10
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	return &Server{
		stores:    stores,
		opts:      opts,
		sessions:  middleware.NewSessionStore(),
		limiter:   middleware.NewRateLimiter(opts.RatePerSecond, time.Second),
		templates: tmpl,
	}, nil
}

// Sessions exposes the session store so callers can sign a user in directly.
func (s *Server) Sessions() *middleware.SessionStore {
	return s.sessions
}

// RunBackground runs housekeeping until ctx is cancelled.
func (s *Server) RunBackground(ctx context.Context) {
	s.limiter.RunCleanup(ctx)
}

// Routes registers every route on a bare mux with no middleware.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	if s.opts.StaticDir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	}
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/preorder", s.handleSubmitPreorder)
	mux.HandleFunc("/api/preorders", s.handleAPIPreorders)
	mux.HandleFunc("/admin", s.handleAdmin)
	mux.HandleFunc("/api/admin/dashboard", s.handleAPIAdminDashboard)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// Handler wraps Routes with the full middleware stack.
// PRE: opts.CSRFKey is 32 bytes
func (s *Server) Handler() http.Handler {
	// Outermost first: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> mux
	return middleware.Chain(s.Routes(),
		middleware.SecurityHeaders,
		middleware.CSRF(s.opts.CSRFKey, middleware.CSRFOptions{
			Secure:         s.opts.Secure,
			TrustedOrigins: s.opts.TrustedOrigins,
		}),
		middleware.Auth(s.sessions),
		middleware.RateLimit(s.limiter),
		middleware.Timing(s.opts.SlowRequestMs),
	)
}

func (s *Server) now() time.Time {
	return s.opts.Now()
}
