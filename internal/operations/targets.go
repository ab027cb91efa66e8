package operations

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/indaco/verup/internal/printer"
)

// globMeta are the characters that turn a files entry into a glob.
const globMeta = "*?[{"

// skippedDirs are never searched when expanding globs.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// expandTargets resolves the manifest's files list into concrete paths
// relative to root, keeping declaration order. Literal entries pass through
// untouched; glob entries are replaced by their matches in lexical order.
// The manifest itself is never a glob match.
func (op *BumpOperation) expandTargets(ctx context.Context, root, manifestPath string, files []string) ([]string, error) {
	targets := make([]string, 0, len(files))
	for _, entry := range files {
		if !strings.ContainsAny(entry, globMeta) {
			targets = append(targets, entry)
			continue
		}

		matches, err := op.globTargets(ctx, root, manifestPath, entry)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			printer.PrintWarning(fmt.Sprintf("Pattern %q matched no files", entry))
		}
		targets = append(targets, matches...)
	}
	return targets, nil
}

func (op *BumpOperation) globTargets(ctx context.Context, root, manifestPath, entry string) ([]string, error) {
	g, err := glob.Compile(strings.TrimPrefix(filepath.ToSlash(entry), "./"), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid files pattern %q: %w", entry, err)
	}

	var matches []string
	err = op.fs.WalkDir(ctx, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if path == manifestPath {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || inSkippedDir(rel) {
			return nil
		}
		if g.Match(filepath.ToSlash(rel)) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expand files pattern %q: %w", entry, err)
	}
	return matches, nil
}

// inSkippedDir reports whether rel lies below one of skippedDirs.
func inSkippedDir(rel string) bool {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, dir := range parts[:len(parts)-1] {
		if skippedDirs[dir] {
			return true
		}
	}
	return false
}
