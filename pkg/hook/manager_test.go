package hook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepstack/packman/pkg/errors"
)

func TestManager_ExecuteWithoutHook(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Execute(PreInstall, Context{PackID: "biology-101"}))
}

func TestManager_AddAndExecute(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddHook(Hook{
		Type:    PreInstall,
		Content: `err := ""`,
	}))

	assert.True(t, m.HasHook(PreInstall))
	assert.False(t, m.HasHook(PostInstall))
	assert.NoError(t, m.Execute(PreInstall, Context{PackID: "biology-101"}))
}

func TestManager_AddHookEmptyType(t *testing.T) {
	m := NewManager()
	assert.ErrorIs(t, m.AddHook(Hook{Content: `err := ""`}), errors.ErrHookTypeEmpty)
}

func TestManager_RemoveHook(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddHook(Hook{Type: PreRemove, Content: `err := "should never run"`}))
	require.NoError(t, m.RemoveHook(PreRemove))

	assert.False(t, m.HasHook(PreRemove))
	assert.NoError(t, m.Execute(PreRemove, Context{}))
	assert.ErrorIs(t, m.RemoveHook(""), errors.ErrHookTypeEmpty)
}

func TestExecutor_ScriptSeesPackContext(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddHook(Hook{
		Type: PreInstall,
		Content: `
err := ""
if packId != "biology-101" {
	err = "unexpected pack id: " + packId
}
if packVersion != "1.2.0" {
	err = "unexpected version: " + packVersion
}
if packPath == "" {
	err = "pack path not set"
}`,
	}))

	ctx := Context{PackID: "biology-101", PackVersion: "1.2.0", PackPath: "/tmp/staging"}
	assert.NoError(t, m.Execute(PreInstall, ctx))

	ctx.PackVersion = "9.9.9"
	err := m.Execute(PreInstall, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "unexpected version: 9.9.9")
}

func TestExecutor_ScriptFailure(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddHook(Hook{
		Type:    PreInstall,
		Content: `err := "pack rejected by hook"`,
	}))

	err := m.Execute(PreInstall, Context{PackID: "biology-101"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "pack rejected by hook")
}

func TestExecutor_CompileError(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddHook(Hook{
		Type:    PostInstall,
		Content: `this is not tengo ===`,
	}))

	err := m.Execute(PostInstall, Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestExecutor_ExtraVars(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddHook(Hook{
		Type: PostInstall,
		Content: `
err := ""
if firstInstall != true {
	err = "expected firstInstall flag"
}`,
	}))

	ctx := Context{PackID: "biology-101", Vars: map[string]interface{}{"firstInstall": true}}
	assert.NoError(t, m.Execute(PostInstall, ctx))
}

func TestLoadFromPackDir(t *testing.T) {
	packDir := t.TempDir()
	hooksDir := filepath.Join(packDir, "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))

	writeHook := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(hooksDir, name), []byte(content), 0o644))
	}
	writeHook("pre-install.tengo", `err := ""`)
	writeHook("post-install.tengo", `err := ""`)
	writeHook("unknown-phase.tengo", `err := ""`)
	writeHook("readme.txt", "not a hook")

	m := NewManager()
	require.NoError(t, LoadFromPackDir(m, packDir))

	assert.True(t, m.HasHook(PreInstall))
	assert.True(t, m.HasHook(PostInstall))
	assert.False(t, m.HasHook(Type("unknown-phase")))
	assert.False(t, m.HasHook(PreRemove))
}

func TestLoadFromPackDir_NoHooksDir(t *testing.T) {
	m := NewManager()
	assert.NoError(t, LoadFromPackDir(m, t.TempDir()))
	assert.False(t, m.HasHook(PreInstall))
}
