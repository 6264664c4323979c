package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrStoreUnavailable = errors.New("persistent store unavailable")
	ErrInvalidPath      = errors.New("invalid store path")
)

// Store is the key-path-addressed persistent mapping the application delegates
// all persistence to. Every call is a single network round trip; there is no
// multi-path transaction, so callers that need a cascade issue sequential
// operations and report partial failure themselves.
type Store interface {
	// Get reads the value at the path into out. It reports false with a nil
	// error when the path holds nothing; absence is not a failure.
	Get(ctx context.Context, out any, segments ...string) (bool, error)
	// GetAll returns the direct children of the path, keyed by child key.
	// An absent path yields an empty map.
	GetAll(ctx context.Context, segments ...string) (map[string]json.RawMessage, error)
	// Set writes the value at the path, replacing whatever was there.
	Set(ctx context.Context, value any, segments ...string) error
	// Push appends the value under the path with a generated key and returns
	// that key.
	Push(ctx context.Context, value any, segments ...string) (string, error)
	// Remove deletes the path and everything beneath it. Removing an absent
	// path is a no-op.
	Remove(ctx context.Context, segments ...string) error
}

func joinPath(segments []string) (string, error) {
	if len(segments) == 0 {
		return "", ErrInvalidPath
	}
	for _, s := range segments {
		if s == "" || strings.Contains(s, "/") {
			return "", ErrInvalidPath
		}
	}
	return strings.Join(segments, "/"), nil
}
