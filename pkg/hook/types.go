// Package hook runs optional pack lifecycle scripts. Packs may ship Tengo
// scripts under hooks/; they are executed only after the pack passed
// integrity verification.
package hook

// Type represents the lifecycle point a hook runs at.
type Type string

// Supported hook types.
const (
	PreInstall  Type = "pre-install"
	PostInstall Type = "post-install"
	PreRemove   Type = "pre-remove"
	PostRemove  Type = "post-remove"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    Type
	Content string
}

// Context contains the information passed to a hook script.
type Context struct {
	PackID      string
	PackVersion string
	PackPath    string
	Vars        map[string]interface{}
}

// Manager defines the interface for managing pack lifecycle hooks.
type Manager interface {
	// Execute runs the specified hook type with the given context.
	Execute(hookType Type, ctx Context) error

	// AddHook adds a new hook.
	AddHook(hook Hook) error

	// RemoveHook removes a hook of the specified type.
	RemoveHook(hookType Type) error

	// HasHook checks if a hook of the specified type exists.
	HasHook(hookType Type) bool
}
