package gatekit

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// Code classifies a gate decision.
type Code string

const (
	CodeOK            Code = "OK"
	CodeUnauthorized  Code = "UNAUTHORIZED"   // no principal resolvable
	CodeRateLimited   Code = "RATE_LIMITED"   // short-window ceiling hit, retry after ResetAt
	CodeForbidden     Code = "FORBIDDEN"      // plan lacks the capability outright
	CodeLimitExceeded Code = "LIMIT_EXCEEDED" // periodic quota consumed, resets next period
)

// Decision is the structured outcome of Gate.Authorize. Denials carry
// enough context (plan, trial flag, usage, limit) for the caller to
// render an upgrade prompt without further lookups.
type Decision struct {
	Allowed bool      `json:"allowed"`
	Code    Code      `json:"code"`
	Plan    plan.Tier `json:"plan,omitempty"`
	IsTrial bool      `json:"is_trial,omitempty"`

	// Quota context, populated for metered features.
	CurrentUsage int64 `json:"current_usage,omitempty"`
	Limit        int64 `json:"limit,omitempty"`

	// Rate-limit context, populated on RATE_LIMITED.
	Remaining int       `json:"remaining,omitempty"`
	ResetAt   time.Time `json:"reset_at,omitzero"`
}

// HTTPStatus maps the decision to the status code the route boundary
// should respond with.
func (d Decision) HTTPStatus() int {
	switch d.Code {
	case CodeOK:
		return http.StatusOK
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeRateLimited, CodeLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func allow(tier plan.Tier, isTrial bool) Decision {
	return Decision{Allowed: true, Code: CodeOK, Plan: tier, IsTrial: isTrial}
}
