package models

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing or rejected token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated role may not perform the call.
	ErrForbidden = errors.New("forbidden")

	// ErrNotLoggedIn is returned by client-side guards before any network
	// call is attempted for an action that needs an authenticated user.
	ErrNotLoggedIn = errors.New("not logged in")
)
