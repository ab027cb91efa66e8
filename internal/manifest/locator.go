package manifest

import (
	"context"
	"path/filepath"

	"github.com/indaco/verup/internal/core"
)

// Locator finds the manifest governing a directory.
type Locator struct {
	fs       core.FileSystem
	filename string
}

// NewLocator creates a Locator searching for files named filename.
func NewLocator(fs core.FileSystem, filename string) *Locator {
	return &Locator{fs: fs, filename: filename}
}

// Find walks from startDir up to the filesystem root and returns the path of
// the first acceptable manifest.
//
// With a non-empty name, only a manifest whose "name" equals it is accepted.
// Without one, any manifest is accepted unless it is verup's own (SelfName);
// unparsable manifests are accepted too and fail later when read.
//
// A manifest that exists but cannot be read stops the walk with an
// *UnreadableError. When nothing matches, *NotFoundError is returned.
func (l *Locator) Find(ctx context.Context, startDir, name string) (string, error) {
	dir := filepath.Clean(startDir)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := filepath.Join(dir, l.filename)
		if _, err := l.fs.Stat(ctx, candidate); err == nil {
			data, err := l.fs.ReadFile(ctx, candidate)
			if err != nil {
				return "", &UnreadableError{Package: l.filename, Path: candidate, Err: err}
			}
			if l.accept(candidate, data, name) {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &NotFoundError{Package: l.filename, Dir: startDir}
}

func (l *Locator) accept(path string, data []byte, name string) bool {
	m, err := Parse(path, data)
	if name != "" {
		if err != nil {
			return false
		}
		got, ok := m.Name()
		return ok && got == name
	}
	if err != nil {
		return true
	}
	got, _ := m.Name()
	return got != SelfName
}
