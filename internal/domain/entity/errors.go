package entity

import "errors"

// Sentinel errors shared across the reservation domain
var (
	// ErrNotFound means no reservation matched the phone key
	ErrNotFound = errors.New("reservation not found")
	// ErrUnparseable means a date or time expression could not be resolved
	ErrUnparseable = errors.New("unparseable date or time expression")
	// ErrUnverifiable means the hours for a day could not be extracted from
	// the knowledge source
	ErrUnverifiable = errors.New("business hours unverifiable")
	// ErrDuplicate means a reservation already exists for the phone key and
	// the duplicate policy forbids another one
	ErrDuplicate = errors.New("reservation already exists for phone")
	// ErrSessionClosed means the conversation was torn down and accepts no
	// further turns
	ErrSessionClosed = errors.New("session closed")
)
