//go:generate mockgen -destination=./mocks/download.go -package=mocks . Manager

// Package download fetches pack archives over HTTP into the temp directory,
// reporting progress as bytes arrive. Downloads are cancelable and bounded by
// a hard timeout; a re-issued download for a pack id supersedes any prior
// in-flight transfer for that id.
package download

import (
	"context"
	"net/url"

	"github.com/prepstack/packman/pkg/model"
)

// Manager defines the interface for downloading pack archives.
type Manager interface {
	// Fetch downloads one pack archive to <tempDir>/<packID>.zip and returns
	// the temp path. Progress snapshots are delivered to progress (may be nil).
	// A failed or canceled download may leave a partial temp file behind; the
	// temp-file janitor removes it later.
	Fetch(ctx context.Context, packID string, url *url.URL, progress model.ProgressFunc) (string, error)

	// Cancel cooperatively aborts the tracked in-flight transfer for the pack
	// id. It reports whether a transfer was tracked; canceling an unknown id
	// is a no-op.
	Cancel(packID string) bool
}
