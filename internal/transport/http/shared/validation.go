package shared

import (
	"math"
	"net/http"
	"strings"
	"time"

	"nwfpay/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

// NonNegative rejects negative or non-finite numeric input.
func (v *Validator) NonNegative(field string, value float64) {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		v.Add(field, "must be a non-negative number")
	}
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) OK() bool {
	return len(v.issues) == 0
}

// Respond writes a 422 carrying the collected issues and reports whether it
// did so.
func (v *Validator) Respond(w http.ResponseWriter, requestID string) bool {
	if v.OK() {
		return false
	}
	api.WriteJSON(w, http.StatusUnprocessableEntity, api.Envelope{
		Success:   false,
		Data:      v.issues,
		Error:     &api.Error{Code: "validation_failed", Message: "request validation failed"},
		RequestID: requestID,
	})
	return true
}
