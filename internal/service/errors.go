// Package service implements the business rules between the HTTP
// handlers and the storage layer: role checks on references, the
// one-assignment-per-client rule, and iteration ownership.
package service

import "errors"

var (
	// ErrInvalidReference is returned when an assignment references an
	// account that does not exist or has the wrong role.
	ErrInvalidReference = errors.New("invalid central_auth_id or client_id")

	// ErrCentralNotFound is returned when an iteration listing names a
	// user that is missing or not a central account.
	ErrCentralNotFound = errors.New("central auth user not found")

	// ErrOwnerNotFound is returned when an iteration create or update
	// names an owner account that does not exist.
	ErrOwnerNotFound = errors.New("provided central_auth user not found")

	// ErrOwnerNotCentral is returned when the named owner account exists
	// but is not a central account.
	ErrOwnerNotCentral = errors.New("provided user is not a central auth user")

	// ErrOwnerMismatch is returned when an update supplies an owner that
	// differs from the iteration's current owner. Updates may only
	// confirm the existing owner, never reassign.
	ErrOwnerMismatch = errors.New("not allowed to edit this iteration")
)
