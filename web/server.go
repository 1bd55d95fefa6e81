package web

import (
	"konvyshop/web/session"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Options wires the storefront server.
type Options struct {
	Server   rweb.ServerOptions
	Sessions *session.Manager
	// RequestsPerMinute per client IP; zero disables rate limiting
	RequestsPerMinute int
}

// NewServer creates and configures the RWeb server
func NewServer(opts Options) *rweb.Server {
	s := rweb.NewServer(opts.Server)

	s.Use(rweb.RequestInfo)
	s.Use(CorsMiddleware)
	s.Use(SecurityHeadersMiddleware)
	if opts.RequestsPerMinute > 0 {
		s.Use(RateLimitMiddleware(opts.RequestsPerMinute))
	}
	s.Use(SessionMiddleware(opts.Sessions))
	s.Use(LoggingMiddleware)

	setupRoutes(s)

	// Embedded, content-versioned assets
	SetupStaticFiles(s)

	return s
}

// NewTestServer builds the full server without rate limiting. Pass
// Address "localhost:" and a ReadyChan, then read the port with
// GetListenPort once ready.
func NewTestServer(opts rweb.ServerOptions, sessions *session.Manager) *rweb.Server {
	return NewServer(Options{Server: opts, Sessions: sessions})
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("Konvy storefront starting on", "address", address)
	return s.Run()
}
