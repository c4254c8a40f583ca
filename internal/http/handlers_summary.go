package http

import (
	"net/http"

	"finance/internal/core"
	"finance/internal/log"
)

// handleSummaryPartial renders the totals and category breakdown for the
// requested view.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	view := ParseView(r.URL.Query())
	sum, err := s.ledger.Summary(r.Context(), view)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Summary error",
			log.FieldOperation, log.OpSummarize,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase,
			log.FieldView, view)
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Error loading summary</div></section>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Balance: ` + sum.Totals.Balance.Format(s.currency) + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary", s.summaryView(sum)); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error",
			log.FieldComponent, log.ComponentTemplate,
			log.FieldOperation, log.OpRender,
			log.FieldError, err,
			"template", "summary")
	}
}

// handleTransactionsPartial renders the history list, newest first.
func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	txs, err := s.ledger.Transactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List transactions error",
			log.FieldOperation, log.OpList,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase)
		_, _ = w.Write([]byte(`<section id="history" class="history"><div class="placeholder">Error loading transactions</div></section>`))
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "transactions", s.transactionRows(txs)); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error",
			log.FieldComponent, log.ComponentTemplate,
			log.FieldOperation, log.OpRender,
			log.FieldError, err,
			"template", "transactions")
	}
}

// handleAPISummary returns the summary with its chart series for external
// renderers.
func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	view := ParseView(r.URL.Query())
	sum, err := s.ledger.Summary(r.Context(), view)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Summary error",
			log.FieldOperation, log.OpSummarize,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase,
			log.FieldView, view)
		JSONErrorResponse(http.StatusInternalServerError, "could not summarize the ledger").Write(w)
		return
	}
	NewHTMXResponse().BodyJSON(sum).Write(w)
}

type transactionsResponse struct {
	Count        int                `json:"count"`
	Transactions []core.Transaction `json:"transactions"`
}

func (s *Server) handleAPITransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.ledger.Transactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List transactions error",
			log.FieldOperation, log.OpList,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase)
		JSONErrorResponse(http.StatusInternalServerError, "could not list transactions").Write(w)
		return
	}
	if txs == nil {
		txs = core.Ledger{}
	}
	NewHTMXResponse().BodyJSON(transactionsResponse{Count: len(txs), Transactions: txs}).Write(w)
}
