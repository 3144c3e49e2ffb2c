package domain

import "errors"

var (
	// ErrFetch marks a transport failure or a non-2xx response from the
	// station API.
	ErrFetch = errors.New("fetch stations")

	// ErrParse marks a response body or station record that does not have
	// the expected structure.
	ErrParse = errors.New("parse stations")
)
