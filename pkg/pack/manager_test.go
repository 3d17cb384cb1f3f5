package pack_test

import (
	"context"
	"crypto/ed25519"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/prepstack/packman/pkg/archive"
	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/model"
	"github.com/prepstack/packman/pkg/pack"
	"github.com/prepstack/packman/pkg/pack/mocks"
	"github.com/prepstack/packman/pkg/store"
	"github.com/prepstack/packman/pkg/validation"
	"github.com/prepstack/packman/pkg/verify"
)

const testAppVersion = "2.0.0"

// testEnv bundles a pack manager with the key and directories its packs are
// built against.
type testEnv struct {
	manager    *pack.ManagerImpl
	records    store.RecordStore
	packsDir   string
	tempDir    string
	publicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	publicHex, privateHex, err := verify.GenerateKeyPair()
	require.NoError(t, err)
	pub, err := verify.ParsePublicKey(publicHex)
	require.NoError(t, err)
	priv, err := verify.ParsePrivateKey(privateHex)
	require.NoError(t, err)

	base := t.TempDir()
	packsDir := filepath.Join(base, "packs")
	tempDir := filepath.Join(base, "tmp")

	records, err := store.NewFileStore(filepath.Join(base, "installed.json"))
	require.NoError(t, err)

	manager := pack.NewManager(
		verify.NewVerifier(pub),
		validation.NewValidator(),
		nil,
		records,
		packsDir,
		tempDir,
		testAppVersion,
	)

	return &testEnv{
		manager:    manager,
		records:    records,
		packsDir:   packsDir,
		tempDir:    tempDir,
		publicKey:  pub,
		privateKey: priv,
	}
}

// packSpec tweaks the content a test pack is built from.
type packSpec struct {
	version       string
	minAppVersion string
	maxAppVersion string
	questionsJSON string
	hooks         map[string]string
}

func defaultSpec() packSpec {
	return packSpec{
		version:       "1.2.0",
		minAppVersion: "1.0.0",
		questionsJSON: `[{"id":"q1","type":"single","stem":"Which organelle produces ATP?","topicIds":["cells"],"difficulty":"med","choices":[{"id":"a","text":"Mitochondrion"},{"id":"b","text":"Ribosome"}],"correct":["a"]}]`,
	}
}

// buildTestPack assembles a signed pack archive and returns the archive path
// and its manifest.
func buildTestPack(t *testing.T, env *testEnv, spec packSpec) (string, *model.Manifest) {
	t.Helper()

	inputDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(inputDir, "content"), 0o755))

	files := map[string]string{
		"content/questions.json": spec.questionsJSON,
		"content/templates.json": `[{"id":"t1","name":"Practice","durationMinutes":60,"sections":[{"topicIds":["cells"],"count":5}]}]`,
		"content/tips.json":      `[{"id":"tip1","topicIds":["cells"],"title":"ATP","body":"Mitochondria produce most cellular ATP."}]`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(inputDir, filepath.FromSlash(name)), []byte(content), 0o644))
	}
	if len(spec.hooks) > 0 {
		require.NoError(t, os.MkdirAll(filepath.Join(inputDir, "hooks"), 0o755))
		for name, script := range spec.hooks {
			require.NoError(t, os.WriteFile(filepath.Join(inputDir, "hooks", name), []byte(script), 0o644))
		}
	}

	manifest := &model.Manifest{
		ID:            "biology-101",
		Version:       spec.version,
		Name:          "Biology Fundamentals",
		Description:   "Core biology question bank",
		Author:        "PrepStack Content Team",
		MinAppVersion: spec.minAppVersion,
		MaxAppVersion: spec.maxAppVersion,
		Files: model.ManifestFiles{
			Questions:     "content/questions.json",
			ExamTemplates: "content/templates.json",
			Tips:          "content/tips.json",
		},
		Metadata: model.ManifestMetadata{TotalQuestions: 1},
	}

	builder := archive.NewBuilder(manifest, inputDir, t.TempDir(), env.privateKey)
	archivePath, manifestPath, err := builder.Build(context.Background())
	require.NoError(t, err)

	built, err := archive.LoadManifest(manifestPath)
	require.NoError(t, err)
	return archivePath, built
}

func TestDownload_ChecksCompatibilityFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t)
	dl := mocks.NewMockDownloader(ctrl)
	manager := pack.NewManager(verify.NewVerifier(env.publicKey), validation.NewValidator(), dl, env.records, env.packsDir, env.tempDir, testAppVersion)

	source, _ := url.Parse("https://packs.example.com/biology-101_9.0.0.zip")
	manifest := &model.Manifest{ID: "biology-101", Version: "9.0.0", MinAppVersion: "9.0.0"}

	// Incompatible pack: no download is attempted.
	_, err := manager.Download(context.Background(), manifest, source, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrIncompatiblePack)

	// Compatible pack: delegated to the downloader.
	manifest.MinAppVersion = "1.0.0"
	dl.EXPECT().Fetch(gomock.Any(), "biology-101", source, gomock.Nil()).Return("/tmp/biology-101.zip", nil)
	path, err := manager.Download(context.Background(), manifest, source, nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/biology-101.zip", path)
}

func TestDownload_RequiresManifest(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.manager.Download(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, errors.ErrManifestInvalid)
}

func TestCancelDownload_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t)
	dl := mocks.NewMockDownloader(ctrl)
	manager := pack.NewManager(verify.NewVerifier(env.publicKey), validation.NewValidator(), dl, env.records, env.packsDir, env.tempDir, testAppVersion)

	dl.EXPECT().Cancel("biology-101").Return(true)
	assert.True(t, manager.CancelDownload("biology-101"))
}
