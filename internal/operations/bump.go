// Package operations runs a version bump end to end: locate the manifest,
// compute the next version and propagate it to every declared file.
package operations

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indaco/verup/internal/config"
	"github.com/indaco/verup/internal/core"
	"github.com/indaco/verup/internal/manifest"
	"github.com/indaco/verup/internal/pattern"
	"github.com/indaco/verup/internal/printer"
	"github.com/indaco/verup/internal/rewriter"
	"github.com/indaco/verup/internal/semver"
	"github.com/indaco/verup/internal/tui"
)

// TargetError reports a declared file that could not be updated. Files
// processed before it, and the manifest, have already been written.
type TargetError struct {
	Path string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("failed to update %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TargetError) Unwrap() error {
	return e.Err
}

// Result describes a completed bump.
type Result struct {
	ManifestPath string
	OldVersion   string
	NewVersion   string
	// Changed lists the target files whose content changed, relative to the manifest directory.
	Changed  []string
	DryRun   bool
	Declined bool
}

// BumpOperation performs a version bump for one configuration.
type BumpOperation struct {
	fs        core.FileSystem
	cfg       config.Config
	confirmer tui.Confirmer
	engine    *rewriter.Engine
}

// NewBumpOperation creates a new bump operation. confirmer is only consulted
// when cfg.Confirm is set; nil approves every prompt.
func NewBumpOperation(fs core.FileSystem, cfg config.Config, confirmer tui.Confirmer) *BumpOperation {
	return &BumpOperation{
		fs:        fs,
		cfg:       cfg,
		confirmer: confirmer,
		engine:    rewriter.NewEngine(fs),
	}
}

// Execute runs the bump. Errors from the manifest stage are the typed errors
// of package manifest; target failures are *TargetError.
func (op *BumpOperation) Execute(ctx context.Context) (*Result, error) {
	startDir, err := op.startDir()
	if err != nil {
		return nil, err
	}

	locator := manifest.NewLocator(op.fs, op.cfg.Package)
	manifestPath, err := locator.Find(ctx, startDir, op.cfg.Name)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(manifestPath)

	data, err := op.fs.ReadFile(ctx, manifestPath)
	if err != nil {
		return nil, &manifest.UnreadableError{Package: op.cfg.Package, Path: manifestPath, Err: err}
	}
	doc, err := manifest.Parse(manifestPath, data)
	if err != nil {
		return nil, &manifest.ParseError{Package: op.cfg.Package, Path: manifestPath, Err: err}
	}

	verup, ok := doc.Verup()
	if !ok {
		return nil, &manifest.MissingConfigError{Package: op.cfg.Package, Path: manifestPath}
	}

	oldVersion := doc.CurrentVersion()
	if oldVersion == "" {
		return nil, &manifest.MissingVersionError{Package: op.cfg.Package, Path: manifestPath}
	}

	patterns, err := pattern.Compile(verup.Regs)
	if err != nil {
		return nil, err
	}

	newVersion := op.nextVersion(oldVersion)
	printer.Println(fmt.Sprintf("Bumping version: %s -> %s", oldVersion, newVersion))

	result := &Result{
		ManifestPath: manifestPath,
		OldVersion:   oldVersion,
		NewVersion:   newVersion,
		DryRun:       op.cfg.DryRun,
	}

	if op.cfg.Confirm && !op.cfg.DryRun {
		approved, err := op.confirm(newVersion, manifestPath)
		if err != nil {
			return nil, err
		}
		if !approved {
			result.Declined = true
			printer.PrintWarning("Aborted, no files written")
			return result, nil
		}
	}

	if err := op.writeManifest(ctx, manifestPath, data, oldVersion, newVersion); err != nil {
		return nil, err
	}

	targets, err := op.expandTargets(ctx, root, manifestPath, verup.Files)
	if err != nil {
		return nil, err
	}

	for _, target := range targets {
		changed, err := op.rewriteTarget(ctx, root, target, newVersion, patterns)
		if err != nil {
			return nil, err
		}
		if changed {
			result.Changed = append(result.Changed, displayPath(target))
		}
	}

	if op.cfg.DryRun {
		printer.PrintFaint("Dry run: no files written")
	}

	return result, nil
}

func (op *BumpOperation) startDir() (string, error) {
	dir := op.cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %q: %w", dir, err)
	}
	return abs, nil
}

// nextVersion applies the configured bump spec, warning about results that
// are probably unintended.
func (op *BumpOperation) nextVersion(current string) string {
	spec := semver.SpecForLabel(op.cfg.Bump)
	if semver.IsDegenerate(spec) {
		printer.PrintWarning(fmt.Sprintf("Bump %q has no non-zero component, version stays the same", op.cfg.Bump))
	}

	next := semver.Bump(current, spec)
	if !semver.IsSemver(next) {
		printer.PrintWarning(fmt.Sprintf("%s is not a valid semantic version", next))
	}
	return next
}

func (op *BumpOperation) confirm(version, manifestPath string) (bool, error) {
	if op.confirmer == nil {
		return true, nil
	}
	return op.confirmer.Confirm(
		fmt.Sprintf("Write version %s?", version),
		fmt.Sprintf("Updates %s and its declared files", manifestPath),
	)
}

// writeManifest rewrites the manifest itself. It is skipped when the version
// does not move.
func (op *BumpOperation) writeManifest(ctx context.Context, path string, data []byte, oldVersion, newVersion string) error {
	if oldVersion == newVersion {
		return nil
	}

	res, err := rewriter.Content(path, data, newVersion, nil)
	if err != nil {
		return &manifest.ParseError{Package: op.cfg.Package, Path: path, Err: err}
	}
	if !res.Changed || op.cfg.DryRun {
		return nil
	}

	if err := op.fs.WriteFile(ctx, path, res.Content, core.PermDefault); err != nil {
		return fmt.Errorf("failed to write %s: %w", op.cfg.Package, err)
	}
	return nil
}

// rewriteTarget updates one declared file and reports whether its content changed.
func (op *BumpOperation) rewriteTarget(ctx context.Context, root, target, version string, patterns []pattern.Pattern) (bool, error) {
	path := filepath.Join(root, target)

	res, err := op.engine.File(ctx, path, version, patterns)
	if err != nil {
		return false, &TargetError{Path: displayPath(target), Err: unwrapPathError(err)}
	}
	if !res.Changed {
		return false, nil
	}

	printer.Println("\t" + displayPath(target))
	if op.cfg.DryRun {
		return true, nil
	}

	if err := op.fs.WriteFile(ctx, path, res.Content, core.PermDefault); err != nil {
		return false, &TargetError{Path: displayPath(target), Err: err}
	}
	return true, nil
}

// displayPath renders a declared file relative to the manifest directory.
func displayPath(target string) string {
	return strings.TrimLeft(filepath.ToSlash(target), "/")
}

// unwrapPathError drops the message wrapping added by the rewriter so the
// target error reads "failed to update x: open x: no such file or directory".
func unwrapPathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr
	}
	return err
}
