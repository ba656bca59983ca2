package types

import "errors"

// Domain errors shared across components
var (
	// ErrNoArtifact is returned when no index artifact exists at the requested location
	ErrNoArtifact = errors.New("no index artifact found")
	// ErrUnrecognizedFormat is returned when artifact text carries neither
	// an entries section nor a partition manifest
	ErrUnrecognizedFormat = errors.New("unrecognized index format")
	// ErrMissingField is returned when a parsed entry lacks a required field
	ErrMissingField = errors.New("entry missing required field")
	// ErrNotIndexed is returned when an operation requires an index that has not been built
	ErrNotIndexed = errors.New("project not indexed")
)
