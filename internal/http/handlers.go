package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"finance/internal/core"
	"finance/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if err := s.ready(ctx); err != nil {
		checks["storage"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["storage"] = "ok"
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	metric := func(name, help, kind string, value interface{}) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", name, help, name, kind, name, value)
	}
	metric("http_requests_total", "Total number of HTTP requests", "counter", traceMetrics.TotalRequests)
	metric("transactions_created_total", "Total number of transactions recorded", "counter", atomic.LoadInt64(&s.appMetrics.transactionsCreated))
	metric("transaction_remove_requests_total", "Total number of remove requests handled", "counter", atomic.LoadInt64(&s.appMetrics.transactionsRemoved))
	metric("rate_limit_rejected_total", "Total requests rejected by the rate limiter", "counter", rateLimitMetrics.Rejected)
	metric("suspicious_requests_total", "Total suspicious requests detected", "counter", s.securityDetector.SuspiciousRequests())
	metric("active_rate_limit_clients", "Currently tracked rate limit clients", "gauge", rateLimitMetrics.ClientCount)
	metric("uptime_seconds", "Application uptime in seconds", "gauge", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	view := ParseView(r.URL.Query())
	sum, err := s.ledger.Summary(r.Context(), view)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to summarize ledger",
			log.FieldOperation, log.OpSummarize,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase,
			log.FieldView, view)
		http.Error(w, "could not load the ledger", http.StatusInternalServerError)
		return
	}
	txs, err := s.ledger.Transactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to list transactions",
			log.FieldOperation, log.OpList,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase)
		http.Error(w, "could not load the ledger", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Today:           today(),
		Categories:      core.Categories,
		DefaultCategory: core.Other,
		Summary:         s.summaryView(sum),
		Transactions:    s.transactionRows(txs),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed",
			log.FieldComponent, log.ComponentTemplate,
			log.FieldOperation, log.OpRender,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeInternal,
			"template", "index.html")
	}
}
