package http

import (
	"bytes"
	"net/http"

	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
)

// handleCreateTransaction accepts the add form (or a JSON body), applies the
// submission guard and stores the record. Nothing is stored on rejection.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.requestLogger(r).WarnContext(r.Context(), "Malformed create request", applog.FieldError, err)
		BadRequestError("Malformed request").Write(w)
		return
	}

	tx, err := ParseTransactionInput(p, core.DateOf(s.now()))
	if err != nil {
		msg := validationMessage(err)
		s.requestLogger(r).WarnContext(r.Context(), "Transaction rejected",
			applog.NewFields().
				WithOperation(applog.OpValidate).
				WithErrorType(applog.ErrorTypeValidation).
				WithError(err).
				ToSlice()...)

		switch {
		case p.IsJSON():
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": msg})
		case isHTMX(r):
			UnprocessableEntityError(msg).TriggerErrorNotification(msg).Write(w)
		default:
			s.renderDashboard(w, r, http.StatusUnprocessableEntity, "", msg)
		}
		return
	}

	id, err := s.svc.CreateTransaction(r.Context(), tx)
	if err != nil {
		s.structured.LogError(r.Context(), "Failed to save transaction", err,
			applog.ComponentTransaction, applog.OpCreate,
			applog.NewFields().
				WithTransaction(0, tx.Kind.String(), tx.Category, tx.Amount, tx.Date.String()).
				WithErrorType(applog.ErrorTypeDatabase))
		if p.IsJSON() {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not save transaction"})
			return
		}
		InternalServerError("Error saving transaction").Write(w)
		return
	}

	s.requestLogger(r).WithComponent(applog.ComponentTransaction).InfoContext(r.Context(), "Transaction created",
		applog.NewFields().
			WithTransaction(id, tx.Kind.String(), tx.Category, tx.Amount, tx.Date.String()).
			WithOperation(applog.OpCreate).
			ToSlice()...)

	switch {
	case p.IsJSON():
		writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
	case isHTMX(r):
		NewHTMXResponse().
			TriggerTransactionCreated(id).
			TriggerFormReset().
			TriggerSuccessNotification(noticeFor("added")).
			Refresh().
			Write(w)
	default:
		http.Redirect(w, r, "/?notice=added", http.StatusSeeOther)
	}
}

// handleDeleteTransaction removes a record by id. Unknown ids succeed silently.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Malformed request").Write(w)
		return
	}

	id, err := ParseID(p)
	if err != nil {
		s.requestLogger(r).WarnContext(r.Context(), "Delete rejected", applog.FieldError, err)
		if p.IsJSON() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		BadRequestError("Invalid transaction id").Write(w)
		return
	}

	if err := s.svc.DeleteTransaction(r.Context(), id); err != nil {
		s.structured.LogError(r.Context(), "Failed to delete transaction", err,
			applog.ComponentTransaction, applog.OpDelete,
			applog.LogFields{applog.FieldTransactionID: id})
		InternalServerError("Error deleting transaction").Write(w)
		return
	}

	s.requestLogger(r).WithComponent(applog.ComponentTransaction).InfoContext(r.Context(), "Transaction deleted",
		applog.FieldTransactionID, id,
		applog.FieldOperation, applog.OpDelete)

	switch {
	case p.IsJSON():
		w.WriteHeader(http.StatusNoContent)
	case isHTMX(r):
		NewHTMXResponse().
			TriggerTransactionDeleted(id).
			TriggerSuccessNotification(noticeFor("deleted")).
			Refresh().
			Write(w)
	default:
		http.Redirect(w, r, "/?notice=deleted", http.StatusSeeOther)
	}
}

// handleExportCSV streams the current list in store order as a download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	txs, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		s.structured.LogError(r.Context(), "Failed to load transactions for export", err,
			applog.ComponentExport, applog.OpExport, nil)
		InternalServerError("Could not export transactions").Write(w)
		return
	}

	// Buffer so a formatting error never leaves a truncated download.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, txs); err != nil {
		s.structured.LogError(r.Context(), "Failed to format CSV", err,
			applog.ComponentExport, applog.OpExport, nil)
		InternalServerError("Could not export transactions").Write(w)
		return
	}

	name := export.Filename(s.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	s.requestLogger(r).WithComponent(applog.ComponentExport).InfoContext(r.Context(), "CSV exported",
		applog.FieldCount, len(txs),
		"filename", name)
}
