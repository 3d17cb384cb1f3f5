// Package archive reads and writes pack archives. The read side opens a pack
// zip as a filesystem and extracts its content files with path-traversal
// protection; the write side assembles, checksums and signs new packs.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/fsutil"
	"github.com/prepstack/packman/pkg/model"
)

// Open opens a pack archive as a read-only filesystem. The returned closer
// must be called when done (important on Windows, where the underlying file
// handle would otherwise stay locked).
func Open(ctx context.Context, archivePath string) (fs.FS, func() error, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrFileNotFound, "pack archive %s", archivePath)
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open pack archive")
	}

	closeFn := func() error { return nil }
	if closer, ok := fsys.(io.Closer); ok {
		closeFn = closer.Close
	}
	return fsys, closeFn, nil
}

// ReadFile reads one file out of an opened pack archive.
func ReadFile(fsys fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path.Clean(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s from pack archive", name)
	}
	return data, nil
}

// ReadJSON decodes one JSON file out of an opened pack archive into v.
func ReadJSON(fsys fs.FS, name string, v any) error {
	data, err := ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to parse %s", name)
	}
	return nil
}

// ExtractTo extracts every regular file of the pack archive into destDir,
// preserving relative paths. Entries that would escape destDir are rejected.
func ExtractTo(ctx context.Context, archivePath, destDir string) error {
	fsys, closeFn, err := Open(ctx, archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	if err := fsutil.EnsureDir(destDir); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", destDir)
	}

	return fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name == "." {
			return nil
		}

		destPath, err := SecurePath(destDir, name)
		if err != nil {
			return err
		}

		if d.IsDir() {
			return fsutil.EnsureDir(destPath)
		}
		if !d.Type().IsRegular() {
			// Symlinks and other special entries have no place in a content pack.
			return nil
		}
		return extractFile(fsys, name, destPath)
	})
}

// SecurePath joins an archive entry name onto destDir, rejecting traversal.
// Manifest-declared content paths go through the same guard, since they are
// not covered by the pack signature.
func SecurePath(destDir, name string) (string, error) {
	clean := path.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", errors.Wrapf(errors.ErrInvalidPath, "archive entry %s escapes the pack directory", name)
	}
	return filepath.Join(destDir, filepath.FromSlash(clean)), nil
}

func extractFile(fsys fs.FS, name, destPath string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive entry %s", name)
	}
	defer src.Close()

	if err := fsutil.EnsureFileDir(destPath); err != nil {
		return err
	}
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}
	return nil
}

// LoadManifest reads a manifest JSON file from disk.
func LoadManifest(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	var manifest model.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(errors.ErrManifestInvalid, err.Error())
	}
	return &manifest, nil
}
