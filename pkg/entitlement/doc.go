// Package entitlement resolves the effective plan for a user: the single
// (tier, isTrial, limits) fact every gated route depends on.
//
// Resolution order is fixed and non-additive:
//
//  1. an active paid subscription wins outright, using its tier (unknown
//     tier strings degrade to free via the catalogue's total fallback)
//  2. otherwise an active trial grants the configured trial tier
//  3. otherwise the user is on free
//
// Limits are never merged across tiers and the result is never cached:
// trial expiry is pure wall-clock, so the resolver recomputes on every
// call.
//
// The package also carries the Subscription record and its store
// interface (memory and Postgres implementations); subscription rows are
// written by billing webhook handlers elsewhere, this package only reads
// the resulting facts.
package entitlement
