package gatekit

import "errors"

var (
	// ErrNoPrincipal is returned when an operation that charges or
	// inspects per-user state is called without an authenticated user.
	ErrNoPrincipal = errors.New("gatekit: no authenticated principal")
)
