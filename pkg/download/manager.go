package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prepstack/packman/pkg/auth"
	pkgerrors "github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/model"
)

const (
	// DefaultTimeout is the hard bound on a single pack download.
	DefaultTimeout = 5 * time.Minute

	// copyBufferSize is the read-loop buffer; progress is reported once per
	// filled buffer.
	copyBufferSize = 32 * 1024
)

// ManagerImpl is an HTTP-based download manager. Each pack id has at most one
// tracked in-flight transfer; starting a new one cancels the previous.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
	tempDir   string
	timeout   time.Duration
	auth      auth.Authenticator

	mu       sync.Mutex
	inflight map[string]*transfer
}

// transfer tracks one in-flight download so it can be canceled or superseded.
type transfer struct {
	cancel context.CancelFunc
}

// NewManager creates a download manager writing into tempDir. A zero timeout
// selects DefaultTimeout; an empty user agent selects the packman default.
func NewManager(tempDir string, timeout time.Duration, userAgent string) *ManagerImpl {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = "packman/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{},
		userAgent: userAgent,
		tempDir:   tempDir,
		timeout:   timeout,
		inflight:  make(map[string]*transfer),
	}
}

// SetAuthenticator installs an authenticator applied to every pack request,
// for repositories behind basic auth, bearer tokens or custom headers.
func (m *ManagerImpl) SetAuthenticator(a auth.Authenticator) {
	m.auth = a
}

// TempPath returns the temp file path a pack id downloads to.
func (m *ManagerImpl) TempPath(packID string) string {
	return filepath.Join(m.tempDir, packID+".zip")
}

// Fetch downloads one pack archive. See Manager for the contract.
func (m *ManagerImpl) Fetch(ctx context.Context, packID string, u *url.URL, progress model.ProgressFunc) (string, error) {
	if u == nil {
		return "", fmt.Errorf("nil URL for pack %s: %w", packID, pkgerrors.ErrDownloadFailed)
	}
	if m.tempDir == "" || !filepath.IsAbs(m.tempDir) {
		return "", fmt.Errorf("temp dir must be absolute: %s: %w", m.tempDir, pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(m.tempDir, fsutil.DirModeSecure); err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp dir")
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	tr := &transfer{cancel: cancel}
	m.track(packID, tr)
	defer m.untrack(packID, tr)

	destPath := m.TempPath(packID)
	if err := m.fetchInto(ctx, packID, u, destPath, progress); err != nil {
		// The partial temp file is deliberately left for the janitor.
		return "", err
	}
	return destPath, nil
}

// Cancel aborts the tracked transfer for the pack id, if any.
func (m *ManagerImpl) Cancel(packID string) bool {
	m.mu.Lock()
	tr, ok := m.inflight[packID]
	delete(m.inflight, packID)
	m.mu.Unlock()

	if ok {
		tr.cancel()
	}
	return ok
}

// track registers the transfer, superseding (canceling) any prior transfer
// for the same pack id.
func (m *ManagerImpl) track(packID string, tr *transfer) {
	m.mu.Lock()
	prev, ok := m.inflight[packID]
	m.inflight[packID] = tr
	m.mu.Unlock()

	if ok {
		prev.cancel()
	}
}

// untrack clears the transfer's registration unless a newer transfer already
// superseded it.
func (m *ManagerImpl) untrack(packID string, tr *transfer) {
	m.mu.Lock()
	if m.inflight[packID] == tr {
		delete(m.inflight, packID)
	}
	m.mu.Unlock()
	tr.cancel()
}

func (m *ManagerImpl) fetchInto(ctx context.Context, packID string, u *url.URL, destPath string, progress model.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	if m.auth != nil {
		if err := m.auth.Apply(req); err != nil {
			return pkgerrors.Wrap(err, "failed to apply authentication")
		}
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return m.classify(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrDownloadFailed)
	}

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return pkgerrors.Wrap(err, "could not create temp file")
	}

	total := resp.ContentLength
	if err := copyWithProgress(dest, resp.Body, packID, total, progress); err != nil {
		_ = dest.Close()
		return m.classify(ctx, err)
	}
	if err := dest.Sync(); err != nil {
		_ = dest.Close()
		return pkgerrors.Wrap(err, "could not sync temp file")
	}
	if err := dest.Close(); err != nil {
		return pkgerrors.Wrap(err, "could not close temp file")
	}
	return nil
}

// classify maps transport errors onto the download error taxonomy: timeout,
// cancellation or plain failure.
func (m *ManagerImpl) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return pkgerrors.Wrap(pkgerrors.ErrDownloadTimeout, err.Error())
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return pkgerrors.Wrap(pkgerrors.ErrDownloadCanceled, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.ErrDownloadFailed, err.Error())
}

func copyWithProgress(dst io.Writer, src io.Reader, packID string, total int64, progress model.ProgressFunc) error {
	buf := make([]byte, copyBufferSize)
	var downloaded int64

	emit := func() {
		if progress == nil {
			return
		}
		snapshot := model.Progress{
			PackID:     packID,
			Downloaded: downloaded,
			Total:      total,
			Status:     model.StatusDownloading,
		}
		if total > 0 {
			snapshot.Percentage = float64(downloaded) / float64(total) * 100
		}
		progress(snapshot)
	}

	emit()
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			emit()
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
