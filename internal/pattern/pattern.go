// Package pattern compiles the line patterns used to locate version strings
// inside free-form text files.
//
// Matching contract: a pattern list is applied to each line from the LAST
// pattern to the FIRST, and only the first pattern that matches rewrites the
// line. The compiler preserves declaration order; Apply implements the
// reverse, first-match-wins iteration.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled version matcher. Its first capturing group is the
// prefix kept in front of the new version; everything else matched by the
// expression is replaced.
type Pattern struct {
	// Source is the pattern as declared (delimited or literal).
	Source string
	re     *regexp.Regexp
}

// Replace rewrites the first match in line with the captured prefix followed
// by version. It reports whether the pattern matched.
func (p Pattern) Replace(line, version string) (string, bool) {
	loc := p.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}
	prefix := ""
	if len(loc) >= 4 && loc[2] >= 0 {
		prefix = line[loc[2]:loc[3]]
	}
	return line[:loc[0]] + prefix + version + line[loc[1]:], true
}

// DefaultSources are the built-in patterns, in declaration order.
var DefaultSources = []string{
	// var version = 'x.x.x'; $version = 'x.x.x'; version := 'x.x.x'; * @version x.x.x; // @version x.x.x
	`/^((?:\$|(?:\s*(?:\*+|/{2,}|#+)?\s*@)|(?:\s*(?:var|,)?\s+))version[\s\:=\'"]+)([0-9]+(?:\.[0-9]+){2,2})/i`,
	// const VERSION = 'x.x.x'; export let VERSION = "x.x.x";
	`/^(\s*(?:export\s+)?(?:const|var|let)\s+VERSION[\s=\'"]+)([0-9]+(?:\.[0-9]+){2,2})/i`,
	// * vX.X.X
	`/^(\s*\*.*v)([0-9]+(?:\.[0-9]+){2,2})/`,
}

var defaults = mustCompileAll(DefaultSources)

// Defaults returns the built-in pattern set.
func Defaults() []Pattern {
	out := make([]Pattern, len(defaults))
	copy(out, defaults)
	return out
}

// CompileError reports a custom pattern that could not be compiled.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid version pattern %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile turns the raw patterns declared in a manifest into matchers.
// A nil or empty list yields the built-in defaults; otherwise the custom list
// replaces them entirely. Entries starting with "/" are delimited regular
// expressions ("/body/flags"); any other entry matches its own text
// literally, ignoring case. A literal has no capturing group, so its whole
// match is replaced by the version.
func Compile(raw []string) ([]Pattern, error) {
	if len(raw) == 0 {
		return Defaults(), nil
	}

	patterns := make([]Pattern, 0, len(raw))
	for _, src := range raw {
		p, err := compileOne(src)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Apply rewrites a single line with the first matching pattern, testing the
// list from last to first. Lines without a match are returned unchanged.
func Apply(patterns []Pattern, line, version string) string {
	for i := len(patterns) - 1; i >= 0; i-- {
		if out, ok := patterns[i].Replace(line, version); ok {
			return out
		}
	}
	return line
}

func compileOne(src string) (Pattern, error) {
	expr := "(?i)" + regexp.QuoteMeta(src)
	if strings.HasPrefix(src, "/") {
		var err error
		expr, err = translateDelimited(src)
		if err != nil {
			return Pattern{}, &CompileError{Source: src, Err: err}
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, &CompileError{Source: src, Err: err}
	}
	return Pattern{Source: src, re: re}, nil
}

// translateDelimited converts "/body/flags" into an RE2 expression with
// inline flags.
func translateDelimited(src string) (string, error) {
	end := strings.LastIndex(src, "/")
	if end == 0 {
		return "", fmt.Errorf("missing closing delimiter")
	}
	body := src[1:end]

	var inline strings.Builder
	for _, f := range src[end+1:] {
		switch f {
		case 'i', 'm', 's', 'U':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case 'u', 'D':
			// UTF-8 is the only mode and $ never matches before a trailing newline.
		default:
			return "", fmt.Errorf("unsupported flag %q", f)
		}
	}

	if inline.Len() == 0 {
		return body, nil
	}
	return "(?" + inline.String() + ")" + body, nil
}

func mustCompileAll(sources []string) []Pattern {
	out := make([]Pattern, 0, len(sources))
	for _, src := range sources {
		p, err := compileOne(src)
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}
