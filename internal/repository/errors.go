// Package repository contains the data access layer separated from the
// HTTP handlers. This file defines sentinel error values shared across
// repositories so that handlers can map failure scenarios onto HTTP
// status codes: not-found errors become 404, duplicate-key errors
// become 409 and everything else is reported as a generic 500 without
// leaking driver internals to the client.
package repository

import (
	"errors"
	"strings"
)

// ErrPolicyHolderNotFound is returned when a policyholder id does not
// exist, including when a policy or event references a missing holder.
var ErrPolicyHolderNotFound = errors.New("policyholder not found")

// ErrPolicyNotFound is returned when an insurance policy id does not exist.
var ErrPolicyNotFound = errors.New("insurance policy not found")

// ErrEventNotFound is returned when a claim event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrBirthIDExists is returned when inserting or updating a
// policyholder would violate the birth_id uniqueness constraint.
var ErrBirthIDExists = errors.New("birth_id already exists")

// ErrUsernameExists is returned when registering a username that is
// already taken.
var ErrUsernameExists = errors.New("username already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). The driver does not expose a typed error for this, so
// the code is matched in the message, the same way the uniqueness race
// on concurrent inserts is detected.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports whether err is a MySQL foreign key failure
// (error 1452), raised when a child row references a missing parent.
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
