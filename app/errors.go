package app

import "errors"

var (
	// ErrNoUser is returned when an operation needs the current user before
	// Bootstrap resolved one
	ErrNoUser = errors.New("no current user")
	// ErrAlreadyInCollection is returned when adding a movie that is already
	// collected or is being added
	ErrAlreadyInCollection = errors.New("movie already in collection")
	// ErrNotInCollection is returned when removing or updating a movie that
	// has no collection entry
	ErrNotInCollection = errors.New("movie not in collection")
	// ErrUnknownMovie is returned when adding a movie absent from the
	// displayed lists
	ErrUnknownMovie = errors.New("movie not found in current lists")
	// ErrEmptyUpdate is returned by Update when nothing would change
	ErrEmptyUpdate = errors.New("update changes nothing")
	// ErrMissingArgument is returned by ParseEvent for incomplete commands
	ErrMissingArgument = errors.New("missing argument")
)
