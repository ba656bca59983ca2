package history

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when no revision history exists for a path.
// It is not a failure: callers fall back to filesystem times.
var ErrUnavailable = errors.New("revision history unavailable")

// Provider answers last-revision queries for files under an indexed root.
// The pipeline consumes this contract only; it never inspects version
// control itself.
type Provider interface {
	// LastRevision returns the time of the most recent recorded change to
	// the file at the given root-relative path. Returns ErrUnavailable when
	// the path has no recorded history.
	LastRevision(ctx context.Context, path string) (time.Time, error)
}

// StaticProvider serves fixed revision times from a map. Used in tests and
// for reproducible runs.
type StaticProvider struct {
	Revisions map[string]time.Time
}

// LastRevision returns the configured time for the path.
func (s *StaticProvider) LastRevision(_ context.Context, path string) (time.Time, error) {
	if t, ok := s.Revisions[path]; ok {
		return t, nil
	}
	return time.Time{}, ErrUnavailable
}
