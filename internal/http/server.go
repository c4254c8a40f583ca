package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"finance/internal/core"
	"finance/internal/log"
	"finance/internal/middleware/ratelimit"
	"finance/internal/middleware/security"
	"finance/internal/middleware/trace"
	appweb "finance/web"
)

// LedgerService is what the handlers need from the ledger.
type LedgerService interface {
	AddTransaction(ctx context.Context, kind core.Kind, f core.Fields) (core.Transaction, error)
	RemoveTransaction(ctx context.Context, id string) error
	Transactions(ctx context.Context) (core.Ledger, error)
	Summary(ctx context.Context, view core.View) (core.Summary, error)
}

// Options configures NewServer. Zero values select the defaults.
type Options struct {
	Currency           string
	RateLimitPerMinute int
	Logger             *log.Logger
	// Ready reports whether the storage backend can serve requests.
	Ready func(ctx context.Context) error
	// TemplatesFS and StaticFS default to the embedded web assets.
	TemplatesFS fs.FS
	StaticFS    fs.FS
}

type appMetrics struct {
	uptime              time.Time
	transactionsCreated int64
	transactionsRemoved int64
}

type Server struct {
	http.Server
	templates *template.Template
	ledger    LedgerService
	currency  string
	ready     func(ctx context.Context) error
	logger    *log.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	appMetrics       *appMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(addr string, ledger LedgerService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	currency := opts.Currency
	if currency == "" {
		currency = core.DefaultCurrency
	}
	ready := opts.Ready
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}

	s := &Server{
		ledger:           ledger,
		currency:         currency,
		ready:            ready,
		logger:           logger.WithComponent(log.ComponentHTTP),
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		securityDetector: security.NewDetector(),
		appMetrics:       &appMetrics{uptime: time.Now()},
	}
	s.traceMiddleware = trace.NewMiddleware(logger, s.securityDetector.ExtractClientIP)

	templatesFS := opts.TemplatesFS
	if templatesFS == nil {
		templatesFS = appweb.TemplatesFS
	}
	t, err := template.New("").Funcs(s.templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err, log.FieldComponent, log.ComponentTemplate)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	staticFS := opts.StaticFS
	if staticFS == nil {
		staticFS = appweb.StaticFS
	}
	if sub, err := fs.Sub(staticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("POST /transactions/{id}/delete", s.handleDeleteTransaction)
	mux.HandleFunc("DELETE /transactions/{id}/delete", s.handleDeleteTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /ui/summary", s.handleSummaryPartial)
	mux.HandleFunc("GET /ui/transactions", s.handleTransactionsPartial)

	mux.HandleFunc("GET /api/summary", s.handleAPISummary)
	mux.HandleFunc("GET /api/transactions", s.handleAPITransactions)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, s.onRateLimited)
	detect := s.securityDetector.Middleware(func(r *http.Request) {
		s.logger.WarnContext(r.Context(), "Suspicious request rejected",
			log.FieldComponent, log.ComponentSecurity,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, s.securityDetector.ExtractClientIP(r))
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.traceMiddleware.Middleware(headers.Middleware(detect(limited(mux)))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldComponent, log.ComponentRateLimit,
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.").Write(w)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) recordCreated() { atomic.AddInt64(&s.appMetrics.transactionsCreated, 1) }
func (s *Server) recordRemoved() { atomic.AddInt64(&s.appMetrics.transactionsRemoved, 1) }
