package service

import "errors"

// Sentinel errors for every caller-visible failure class. The HTTP layer
// maps them to status codes with errors.Is; anything else is a 500.
var (
	// ErrMissingDetails: signup request without name, email or password.
	ErrMissingDetails = errors.New("missing details")

	// ErrContentRequired: note create/update with empty content.
	ErrContentRequired = errors.New("missing note content")

	// ErrNoteNotFound: no note with the requested id. Existence is
	// always checked before authorization, so probing an unknown id
	// yields this regardless of requester.
	ErrNoteNotFound = errors.New("note not found")

	// ErrForbidden: the note exists but the requester lacks the access
	// class the operation needs.
	ErrForbidden = errors.New("unauthorized")

	// ErrEmailRequired: share request without a target email.
	ErrEmailRequired = errors.New("missing sharedUserEmail in the request body")

	// ErrUserNotFound: share target email does not resolve to a user.
	ErrUserNotFound = errors.New("user with the provided email not found")

	// ErrAlreadyShared: the target is already in the shared set.
	ErrAlreadyShared = errors.New("note is already shared with this user")

	// ErrSelfShare: owners cannot appear in their own shared set.
	ErrSelfShare = errors.New("cannot share a note with its owner")

	// ErrQueryRequired: search without a query string.
	ErrQueryRequired = errors.New("missing search query parameter")
)
