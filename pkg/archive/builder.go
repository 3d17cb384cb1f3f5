package archive

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mholt/archives"

	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/model"
	"github.com/prepstack/packman/pkg/verify"
)

// Builder assembles a content directory into a distributable pack: a zip
// archive plus a signed manifest whose checksum covers the exact archive
// bytes. The manifest's Checksum, Signature and CreatedAt fields are filled
// in during Build; everything else must be set by the caller.
type Builder struct {
	manifest   *model.Manifest
	inputDir   string
	outputDir  string
	signingKey ed25519.PrivateKey
}

// NewBuilder creates a pack builder.
func NewBuilder(manifest *model.Manifest, inputDir, outputDir string, signingKey ed25519.PrivateKey) *Builder {
	return &Builder{
		manifest:   manifest,
		inputDir:   inputDir,
		outputDir:  outputDir,
		signingKey: signingKey,
	}
}

// Build archives the input directory, computes the checksum, signs the
// manifest and writes both artifacts into the output directory. It returns
// the archive path and the manifest path.
func (b *Builder) Build(ctx context.Context) (string, string, error) {
	if err := b.checkInput(); err != nil {
		return "", "", err
	}
	if err := fsutil.EnsureDir(b.outputDir); err != nil {
		return "", "", errors.Wrap(err, "failed to create output directory")
	}

	archivePath := filepath.Join(b.outputDir, fmt.Sprintf("%s_%s.zip", b.manifest.ID, b.manifest.Version))
	if err := b.createArchive(ctx, archivePath); err != nil {
		return "", "", err
	}

	checksum, err := hashFile(archivePath)
	if err != nil {
		return "", "", err
	}
	b.manifest.Checksum = checksum
	if b.manifest.CreatedAt == 0 {
		b.manifest.CreatedAt = time.Now().UnixMilli()
	}
	b.manifest.Signature = verify.SignManifest(b.manifest, b.signingKey)

	manifestPath := filepath.Join(b.outputDir, fmt.Sprintf("%s_%s.manifest.json", b.manifest.ID, b.manifest.Version))
	if err := b.writeManifest(manifestPath); err != nil {
		return "", "", err
	}

	return archivePath, manifestPath, nil
}

// checkInput verifies the input directory exists and contains the content
// files the manifest declares.
func (b *Builder) checkInput() error {
	if b.manifest == nil {
		return errors.ErrManifestInvalid
	}
	if b.signingKey == nil {
		return errors.Wrap(errors.ErrInvalidPrivateKey, "a signing key is required to build a pack")
	}
	if _, err := os.Stat(b.inputDir); err != nil {
		return errors.Wrapf(errors.ErrInvalidPath, "input directory %s does not exist", b.inputDir)
	}

	declared := []string{
		b.manifest.Files.Questions,
		b.manifest.Files.ExamTemplates,
		b.manifest.Files.Tips,
	}
	declared = append(declared, b.manifest.Files.Media...)
	for _, rel := range declared {
		if rel == "" {
			return errors.Wrap(errors.ErrManifestInvalid, "manifest declares an empty content file path")
		}
		if _, err := os.Stat(filepath.Join(b.inputDir, filepath.FromSlash(rel))); err != nil {
			return errors.Wrapf(errors.ErrFileNotFound, "declared content file %s is missing from input directory", rel)
		}
	}
	return nil
}

func (b *Builder) createArchive(ctx context.Context, archivePath string) error {
	// Normalize source root to forward slashes to avoid mixed separators on Windows.
	srcRoot := filepath.ToSlash(b.inputDir)
	if !strings.HasSuffix(srcRoot, "/") {
		srcRoot += "/"
	}
	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		srcRoot: "",
	})
	if err != nil {
		return errors.Wrap(err, "failed to read files from disk")
	}

	file, err := os.Create(archivePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create output file %s", archivePath)
	}
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.Zip{}
	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return errors.Wrap(err, "failed to write pack archive")
	}
	return nil
}

func (b *Builder) writeManifest(manifestPath string) error {
	data, err := json.MarshalIndent(b.manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal manifest")
	}
	if err := os.WriteFile(manifestPath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write manifest %s", manifestPath)
	}
	return nil
}

// hashFile computes the SHA-256 digest of a file's bytes.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file for hashing")
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "failed to hash file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
