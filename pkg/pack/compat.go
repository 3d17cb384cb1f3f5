package pack

import (
	"fmt"

	version "github.com/hashicorp/go-version"

	"github.com/prepstack/packman/pkg/model"
)

// Compatibility is the outcome of checking a pack's app version bounds.
// Reason is empty when the pack is compatible.
type Compatibility struct {
	Compatible bool
	Reason     string
}

// CheckCompatibility compares the running app version against the pack's
// declared minimum and optional maximum. Packs with unparseable bounds are
// rejected rather than installed on a guess.
func (m *ManagerImpl) CheckCompatibility(manifest *model.Manifest, appVersion string) Compatibility {
	app, err := version.NewVersion(appVersion)
	if err != nil {
		return Compatibility{Reason: fmt.Sprintf("invalid app version %q: %v", appVersion, err)}
	}

	minVersion, err := version.NewVersion(manifest.MinAppVersion)
	if err != nil {
		return Compatibility{Reason: fmt.Sprintf("invalid minAppVersion %q: %v", manifest.MinAppVersion, err)}
	}
	if app.LessThan(minVersion) {
		return Compatibility{Reason: fmt.Sprintf("pack requires app version %s or newer, have %s", manifest.MinAppVersion, appVersion)}
	}

	if manifest.MaxAppVersion != "" {
		maxVersion, err := version.NewVersion(manifest.MaxAppVersion)
		if err != nil {
			return Compatibility{Reason: fmt.Sprintf("invalid maxAppVersion %q: %v", manifest.MaxAppVersion, err)}
		}
		if app.GreaterThan(maxVersion) {
			return Compatibility{Reason: fmt.Sprintf("pack supports app versions up to %s, have %s", manifest.MaxAppVersion, appVersion)}
		}
	}

	return Compatibility{Compatible: true}
}
