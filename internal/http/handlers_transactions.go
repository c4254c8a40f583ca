package http

import (
	"html/template"
	"net/http"
	"strings"

	"finance/internal/core"
	"finance/internal/log"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := ParseTransactionInput(r)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Unreadable transaction request",
			log.FieldOperation, log.OpParse,
			log.FieldError, err)
		if wantsJSON(r) {
			JSONErrorResponse(http.StatusBadRequest, "invalid request body").Write(w)
			return
		}
		BadRequestError("Invalid request format").Write(w)
		return
	}

	kind, err := core.ParseKind(in.Kind)
	var tx core.Transaction
	if err == nil {
		tx, err = s.ledger.AddTransaction(r.Context(), kind, in.Fields)
	}
	if err != nil {
		// Input problems are reported to the user only
		if msg, ok := validationMessage(err); ok {
			if in.JSON {
				JSONErrorResponse(http.StatusUnprocessableEntity, msg).Write(w)
				return
			}
			UnprocessableEntityError(msg).Write(w)
			return
		}
		log.NewStructuredLogger(s.logger).LogError(r.Context(), "Failed to save transaction", err,
			log.ComponentLedger, log.OpCreate, log.NewFields().WithOperation(log.OpCreate))
		if in.JSON {
			JSONErrorResponse(http.StatusInternalServerError, "could not save the transaction").Write(w)
			return
		}
		InternalServerError("Could not save the transaction").Write(w)
		return
	}

	s.recordCreated()
	log.NewStructuredLogger(s.logger).LogTransactionCreated(r.Context(), tx.ID, tx.Description, tx.Amount.Cents, tx.Category.String())

	if in.JSON {
		NewHTMXResponse().Status(http.StatusCreated).BodyJSON(tx).Write(w)
		return
	}

	label := "Expense"
	if kind == core.Income {
		label = "Income"
	}
	NewHTMXResponse().
		TriggerTransactionCreated(tx.ID, kind.String()).
		TriggerFormReset().
		TriggerSuccessNotification(label + " recorded: " + tx.Description).
		BodyHTML(`<div class="success" role="status">` + template.HTMLEscapeString(label+" recorded: "+tx.Description+" ("+tx.Amount.Abs().Format(s.currency)+")") + `</div>`).
		Write(w)
}

// handleDeleteTransaction always answers 200: removing an unknown id is a
// no-op.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := s.ledger.RemoveTransaction(r.Context(), id); err != nil {
		log.NewStructuredLogger(s.logger).LogError(r.Context(), "Failed to remove transaction", err,
			log.ComponentLedger, log.OpDelete, log.NewFields().WithTransaction(id, "", 0, ""))
		InternalServerError("Could not remove the transaction").Write(w)
		return
	}

	s.recordRemoved()
	NewHTMXResponse().
		TriggerTransactionDeleted(id).
		Write(w)
}
