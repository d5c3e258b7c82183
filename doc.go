// Package gatekit decides whether a user may perform an action right
// now, based on their subscription, trial state, accumulated usage for
// the current billing month, and short-window request rate.
//
// The Gate composes four independently usable layers, checked in order
// of cost:
//
//  1. rate limiting (pkg/ratelimit) — fixed-window counters, fails open
//  2. authentication presence — a request must carry a Principal
//  3. capability flags — does the effective plan include the feature at all
//  4. usage quota (pkg/usage) — monthly metered counters, fails closed
//
// The effective plan (pkg/entitlement) is resolved per decision from
// subscription and trial facts, never cached: an active paid
// subscription wins over an active trial, which wins over the free
// tier. Plan definitions live in pkg/plan.
//
// Authorize never consumes quota. Callers charge usage explicitly with
// CommitUsage after the action succeeded, so a failed export or a
// crashed report generation does not cost the user anything.
package gatekit
