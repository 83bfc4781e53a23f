package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "expenses/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady reports whether templates are loaded and the store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if _, err := s.svc.ListTransactions(ctx); err != nil {
		checks["store"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleIndex renders the dashboard from a fresh snapshot.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.renderDashboard(w, r, http.StatusOK, noticeFor(r.URL.Query().Get("notice")), "")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, notice, formError string) {
	if s.templates == nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.structured.LogError(r.Context(), "Failed to load transactions", err,
			applog.ComponentTransaction, applog.OpList,
			applog.NewFields().WithErrorType(applog.ErrorTypeDatabase))
		InternalServerError("Could not load transactions").Write(w)
		return
	}

	view := buildDashboard(snap, s.currency, s.now())
	view.Notice = notice
	view.FormError = formError

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		s.requestLogger(r).ErrorContext(r.Context(), "Index template execution failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpRender)
	}
}

// handleSummary returns the aggregated view as JSON.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.structured.LogError(r.Context(), "Failed to build summary", err,
			applog.ComponentTransaction, applog.OpList, nil)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load transactions"})
		return
	}
	writeJSON(w, http.StatusOK, buildSummary(snap))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
