// Package semver implements the dotted-version arithmetic used by verup.
package semver

import (
	"math/big"
	"strings"

	modsemver "golang.org/x/mod/semver"
)

// labelSpecs maps bump labels to their equivalent bump specs.
var labelSpecs = map[string]string{
	"patch": "1",
	"minor": "1.0",
	"major": "1.0.0",
}

// SpecForLabel resolves a bump label ("patch", "minor", "major") to its
// numeric bump spec. Any other input is returned unchanged.
func SpecForLabel(spec string) string {
	if s, ok := labelSpecs[strings.ToLower(strings.TrimSpace(spec))]; ok {
		return s
	}
	return spec
}

// Bump computes the next version from a dotted version and a bump spec.
//
// The spec is read from its most significant token: zero or empty tokens are
// skipped until the first non-zero integer, which becomes the increment. The
// increment is added to the version component at the same position counted
// from the least significant end, and every remaining (less significant) spec
// token replaces the matching version component verbatim.
//
// Examples with version "1.2.3":
//   - "1"     -> "1.2.4"
//   - "1.0"   -> "1.3.0"
//   - "1.0.0" -> "2.0.0"
//   - "0.2"   -> "1.2.5"
//   - "1.1"   -> "1.3.1"
//
// Tokens that are not integers are coerced to their leading integer value,
// which is zero for words such as "x". A spec without any non-zero token
// leaves the version unchanged apart from normalizing its last component.
func Bump(version, spec string) string {
	tokens := strings.Split(spec, ".")

	amount := new(big.Int)
	consumed := 0
	for consumed < len(tokens) {
		amount = toInt(tokens[consumed])
		consumed++
		if amount.Sign() != 0 {
			break
		}
	}
	rest := tokens[consumed:]
	pos := len(rest)

	// parts is least significant first.
	parts := reverse(strings.Split(version, "."))
	for len(parts) <= pos {
		parts = append(parts, "0")
	}

	cur := toInt(parts[pos])
	parts[pos] = cur.Add(cur, amount).String()
	for i := range pos {
		parts[i] = rest[pos-1-i]
	}

	return strings.Join(reverse(parts), ".")
}

// IsDegenerate reports whether spec holds no non-zero increment, making Bump a no-op.
func IsDegenerate(spec string) bool {
	for _, tok := range strings.Split(spec, ".") {
		if toInt(tok).Sign() != 0 {
			return false
		}
	}
	return true
}

// IsSemver reports whether v is a full MAJOR.MINOR.PATCH semantic version,
// with optional pre-release and build metadata.
func IsSemver(v string) bool {
	pv := "v" + strings.TrimPrefix(v, "v")
	if !modsemver.IsValid(pv) {
		return false
	}
	return modsemver.Canonical(pv)+modsemver.Build(pv) == pv
}

// toInt returns the integer formed by the optional sign and leading digits of s.
// Anything without leading digits yields zero. Components of any length are
// kept exact.
func toInt(s string) *big.Int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n := new(big.Int)
	if end == digits {
		return n
	}
	n.SetString(s[:end], 10)
	return n
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
