// Package core holds the small abstractions shared by every verup package:
// filesystem access and file permission constants.
package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	PermOwnerRW   os.FileMode = 0o600
	PermDefault   os.FileMode = 0o644
	PermDirectory os.FileMode = 0o755
)

// FileSystem abstracts the whole-file operations verup needs.
// All methods honour context cancellation before touching the disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	Chmod(ctx context.Context, path string, perm os.FileMode) error
	WalkDir(ctx context.Context, root string, fn fs.WalkDirFunc) error
}

// OSFileSystem is the production FileSystem backed by the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns a FileSystem operating on the real disk.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteFile truncates and rewrites path. Existing files keep their mode.
func (OSFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (OSFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (OSFileSystem) Chmod(ctx context.Context, path string, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

func (OSFileSystem) WalkDir(ctx context.Context, root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fn(path, d, err)
	})
}
