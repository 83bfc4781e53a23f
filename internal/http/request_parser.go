// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating request data
// submitted by the dashboard forms or by JSON clients.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"expenses/internal/core"
)

// ErrInvalidID is returned when a delete request carries no usable id.
var ErrInvalidID = errors.New("invalid transaction id")

// valueGetter is satisfied by url.Values and RequestBodyParser.
type valueGetter interface {
	Get(key string) string
}

// ParseTransactionInput builds a transaction from submitted fields and applies
// the submission guard. A missing date defaults to today.
//
// Fields: date (YYYY-MM-DD), type (Income|Expense), category, amount, description.
func ParseTransactionInput(v valueGetter, today core.Date) (core.Transaction, error) {
	date := today
	if raw := strings.TrimSpace(v.Get("date")); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return core.Transaction{}, err
		}
		date = d
	}

	kind, err := core.ParseKind(v.Get("type"))
	if err != nil {
		return core.Transaction{}, err
	}

	amount, err := core.ParseAmount(v.Get("amount"))
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Date:        date,
		Kind:        kind,
		Category:    sanitizeInput(v.Get("category")),
		Amount:      amount,
		Description: sanitizeInput(v.Get("description")),
	}.Normalize()

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// ParseID reads a positive transaction id from the "id" field.
func ParseID(v valueGetter) (int64, error) {
	raw := strings.TrimSpace(v.Get("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// validationMessage turns a guard error into text fit for the form.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a number greater than zero"
	case errors.Is(err, core.ErrInvalidDate):
		return "Date must be in YYYY-MM-DD format"
	case errors.Is(err, core.ErrInvalidKind):
		return "Type must be Income or Expense"
	case errors.Is(err, core.ErrEmptyCategory):
		return "Category is required"
	case errors.Is(err, core.ErrDescriptionTooLong):
		return fmt.Sprintf("Description must be at most %d characters", core.MaxDescriptionLen)
	default:
		return "Invalid data"
	}
}

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(r.Body)
	}
	// DELETE requests from htmx carry parameters in the query string.
	p.formData = r.URL.Query()
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		return nil
	}

	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	form, err := url.ParseQuery(string(p.body))
	if err != nil {
		p.err = err
		return err
	}
	for k, vs := range form {
		p.formData[k] = vs
	}
	return nil
}

// Get returns a string value from the parsed data (JSON, then form or query).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}

func RequireDeleteOrPOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}
