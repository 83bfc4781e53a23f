package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/middleware/security"
	"expenses/internal/middleware/trace"
	"expenses/internal/services"
	appweb "expenses/web"
)

// TransactionService is the slice of the service layer the handlers drive.
type TransactionService interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	Snapshot(ctx context.Context) (services.Snapshot, error)
}

// Options tunes presentation and logging. Zero values pick defaults.
type Options struct {
	CurrencySymbol string
	Logger         *applog.Logger
	// Now overrides the clock used for default dates and export filenames.
	Now func() time.Time
}

type Server struct {
	http.Server
	templates  *template.Template
	svc        TransactionService
	currency   string
	logger     *applog.Logger
	structured *applog.StructuredLogger
	now        func() time.Time
	startedAt  time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, svc TransactionService, opts Options) *Server {
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "₹"
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger.WithComponent(applog.ComponentHTTP)
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		svc:        svc,
		currency:   opts.CurrencySymbol,
		logger:     logger,
		structured: applog.NewStructuredLogger(logger),
		now:        opts.Now,
		startedAt:  time.Now(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	dynamic := func(h http.HandlerFunc) http.Handler { return security.NoStore(h) }
	mux.Handle("/", dynamic(s.handleIndex))
	mux.Handle("/transactions", dynamic(s.handleCreateTransaction))
	mux.Handle("/transactions/delete", dynamic(s.handleDeleteTransaction))
	mux.Handle("/export.csv", dynamic(s.handleExportCSV))
	mux.Handle("/api/summary", dynamic(s.handleSummary))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(opts.Logger, extractClientIP)
	s.Handler = tracer.Middleware(headers.Middleware(mux))

	return s
}

// requestLogger returns the logger the trace middleware scoped to r, so
// handler records carry the request id.
func (s *Server) requestLogger(r *http.Request) *applog.Logger {
	return applog.FromContextOr(r.Context(), s.logger).WithComponent(applog.ComponentHTTP)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
