// Package rewriter computes the new content of a file once its embedded
// version changes. It never writes: callers decide whether to persist the
// result based on Result.Changed.
package rewriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/verup/internal/core"
	"github.com/indaco/verup/internal/manifest"
	"github.com/indaco/verup/internal/pattern"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Kind selects how a file is rewritten.
type Kind int

const (
	// PatternText rewrites free-form text line by line with version patterns.
	PatternText Kind = iota

	// StructuredJSON rewrites the version fields of a JSON document.
	StructuredJSON
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case StructuredJSON:
		return "json"
	default:
		return "text"
	}
}

// KindForFile picks the rewrite kind from the file extension.
func KindForFile(path string) Kind {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return StructuredJSON
	}
	return PatternText
}

// ErrInvalidJSON is returned when a structured target is not a JSON object.
var ErrInvalidJSON = errors.New("not a JSON object")

// jsonIndent reproduces a 2-space pretty layout, expanding every array.
var jsonIndent = &pretty.Options{Width: 0, Prefix: "", Indent: "  ", SortKeys: false}

// Rewriter produces new content for a file carrying version.
type Rewriter interface {
	Rewrite(content []byte, version string) ([]byte, error)
}

// For returns the Rewriter implementing kind. patterns is only used by PatternText.
func For(kind Kind, patterns []pattern.Pattern) Rewriter {
	if kind == StructuredJSON {
		return jsonRewriter{}
	}
	return textRewriter{patterns: patterns}
}

type jsonRewriter struct{}

// Rewrite sets the top-level "version" and "extra.verup.version" fields that
// already exist, keeping key order, and re-indents the document with two
// spaces and a trailing newline. String values are copied verbatim, so no
// slash or unicode escaping is introduced.
func (jsonRewriter) Rewrite(content []byte, version string) ([]byte, error) {
	if !gjson.ValidBytes(content) || !gjson.ParseBytes(content).IsObject() {
		return nil, ErrInvalidJSON
	}

	out := content
	var err error
	if gjson.GetBytes(out, manifest.VersionPath).Exists() {
		if out, err = sjson.SetBytes(out, manifest.VersionPath, version); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", manifest.VersionPath, err)
		}
	}
	if gjson.GetBytes(out, manifest.ExtraPath).IsObject() && gjson.GetBytes(out, manifest.ExtraVersionPath).Exists() {
		if out, err = sjson.SetBytes(out, manifest.ExtraVersionPath, version); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", manifest.ExtraVersionPath, err)
		}
	}

	out = pretty.PrettyOptions(out, jsonIndent)
	out = append(bytes.TrimRight(out, "\n"), '\n')
	return out, nil
}

type textRewriter struct {
	patterns []pattern.Pattern
}

// Rewrite applies the patterns to every line (see pattern.Apply) and rejoins
// the lines with "\n". Line terminators other than "\n" stay attached to
// their line.
func (r textRewriter) Rewrite(content []byte, version string) ([]byte, error) {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = pattern.Apply(r.patterns, line, version)
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// Result is the outcome of rewriting one file.
type Result struct {
	Path     string
	Kind     Kind
	Original []byte
	Content  []byte
	// Changed is false when Content equals Original; such files must not be written.
	Changed bool
}

// Engine reads files and computes their rewritten content.
type Engine struct {
	fs core.FileSystem
}

// NewEngine creates an Engine reading through fs.
func NewEngine(fs core.FileSystem) *Engine {
	return &Engine{fs: fs}
}

// File computes the rewritten content of path for version.
func (e *Engine) File(ctx context.Context, path, version string, patterns []pattern.Pattern) (*Result, error) {
	data, err := e.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return Content(path, data, version, patterns)
}

// Content computes the rewritten form of data, treating it as the content of path.
func Content(path string, data []byte, version string, patterns []pattern.Pattern) (*Result, error) {
	kind := KindForFile(path)
	updated, err := For(kind, patterns).Rewrite(data, version)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %q: %w", path, err)
	}
	return &Result{
		Path:     path,
		Kind:     kind,
		Original: data,
		Content:  updated,
		Changed:  !bytes.Equal(updated, data),
	}, nil
}
