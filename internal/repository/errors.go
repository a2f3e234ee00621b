// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors reused across repositories so
// higher layers can distinguish failure scenarios: ErrForbidden maps to 403,
// ErrConflict to 409 and ErrProfileIncomplete to the blocking
// "complete your profile first" response that gates content creation.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403. Returning
// it explicitly keeps "not yours" distinguishable from "does not exist".
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed due to existing
// state, such as completing an already-completed profile. Handlers translate
// this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrProfileIncomplete is returned when a content-entity operation requires
// a completed profile and the caller's profile_completed flag is false.
var ErrProfileIncomplete = errors.New("profile incomplete")
