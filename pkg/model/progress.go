package model

// ProgressStatus is the phase a pack operation is currently in.
type ProgressStatus string

// Progress phases, in the order an install moves through them.
const (
	StatusDownloading ProgressStatus = "downloading"
	StatusVerifying   ProgressStatus = "verifying"
	StatusInstalling  ProgressStatus = "installing"
	StatusComplete    ProgressStatus = "complete"
	StatusError       ProgressStatus = "error"
)

// Progress is an immutable snapshot of an in-flight pack operation. Snapshots
// are emitted transiently and never persisted.
type Progress struct {
	PackID     string         `json:"packId"`
	Downloaded int64          `json:"downloaded"`
	Total      int64          `json:"total"`
	Percentage float64        `json:"percentage"`
	Status     ProgressStatus `json:"status"`
	Err        string         `json:"error,omitempty"`
}

// ProgressFunc receives progress snapshots during downloads and installs.
// Implementations must not block; they are called from the operation's
// goroutine between reads and writes.
type ProgressFunc func(Progress)
