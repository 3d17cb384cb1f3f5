package pack

import "time"

const (
	// manifestFileName is the manifest written into each installed pack directory.
	manifestFileName = "manifest.json"

	// backupSeparator joins the pack ID and timestamp in backup directory names.
	backupSeparator = "_backup_"

	// tempFileMaxAge is how old a temp file must be before cleanup removes it.
	tempFileMaxAge = 24 * time.Hour
)
