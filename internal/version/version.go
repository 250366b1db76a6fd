// Package version orders upstream version strings that follow no single
// convention. Tags in the wild look like v1.2.3, 1.10, r26 or
// failureaccess-v1.0.2; a plain semver library rejects most of them, and
// lexicographic comparison orders 1.9 after 1.10. Versions are instead
// reduced to a shape (non-digit prefix, numeric segments, non-digit suffix)
// and only same-shape candidates compete.
package version

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrInvalidVersion is returned when a string contains no digit run at all
// and therefore cannot participate in version ordering.
var ErrInvalidVersion = errors.New("invalid version: no numeric component")

var (
	versionRE = regexp.MustCompile(`^(\D*)(\d+(?:[._-]\d+)*)(.*)$`)
	segmentRE = regexp.MustCompile(`[._-]`)
	commitRE  = regexp.MustCompile(`^[a-f0-9]{40}$`)
)

// Parsed is the shape of a version string. Two Parsed values are
// shape-compatible iff prefix, suffix and segment count all match.
type Parsed struct {
	Prefix   string
	Segments []int
	Suffix   string
}

// IsCommitHash reports whether s looks like a full SHA1 commit hash, which
// is how commit-tracking projects record their version.
func IsCommitHash(s string) bool {
	return commitRE.MatchString(s)
}

// Parse splits a version string into its non-digit prefix, numeric segments
// and non-digit suffix. The digit run may use '.', '-' or '_' as segment
// separators; a separator followed by a non-digit ends the run and starts
// the suffix, so "v3.28.0-rc1" parses as {"v", [3 28 0], "-rc1"}.
func Parse(s string) (Parsed, error) {
	m := versionRE.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, ErrInvalidVersion
	}
	parts := segmentRE.Split(m[2], -1)
	segments := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Parsed{}, ErrInvalidVersion
		}
		segments[i] = n
	}
	return Parsed{Prefix: m[1], Segments: segments, Suffix: m[3]}, nil
}

// ShapeCompatible reports whether two parsed versions belong to the same
// release line: identical prefix, identical suffix and the same number of
// numeric segments.
func (p Parsed) ShapeCompatible(other Parsed) bool {
	return p.Prefix == other.Prefix &&
		p.Suffix == other.Suffix &&
		len(p.Segments) == len(other.Segments)
}

// rankKey is the composite ordering key for a candidate relative to the
// current version: shape match first, equal segment count second, numeric
// segments last. A candidate that fails to parse or whose prefix/suffix
// differ never outranks one that matches.
type rankKey struct {
	shapeMatch  bool
	lengthMatch bool
	segments    []int
}

func keyFor(current Parsed, candidate string) rankKey {
	parsed, err := Parse(candidate)
	if err != nil {
		return rankKey{}
	}
	if parsed.Prefix != current.Prefix || parsed.Suffix != current.Suffix {
		return rankKey{}
	}
	return rankKey{
		shapeMatch:  true,
		lengthMatch: len(parsed.Segments) == len(current.Segments),
		segments:    parsed.Segments,
	}
}

// less orders rank keys. Segment tuples compare lexicographically; a tuple
// that is a strict prefix of another ranks below it (missing trailing
// segments are absent, not zero).
func (k rankKey) less(other rankKey) bool {
	if k.shapeMatch != other.shapeMatch {
		return !k.shapeMatch
	}
	if k.lengthMatch != other.lengthMatch {
		return !k.lengthMatch
	}
	for i := 0; i < len(k.segments) && i < len(other.segments); i++ {
		if k.segments[i] != other.segments[i] {
			return k.segments[i] < other.segments[i]
		}
	}
	return len(k.segments) < len(other.segments)
}

// PickLatest returns the maximum of current and all shape-compatible
// candidates under the composite ordering. Ties, including a candidate
// equal to current, resolve to current unchanged: returning the input means
// "no newer version", never an error. The error is non-nil only when
// current itself cannot be parsed.
func PickLatest(current string, candidates []string) (string, error) {
	parsed, err := Parse(current)
	if err != nil {
		return "", err
	}

	best := current
	bestKey := keyFor(parsed, current)
	for _, candidate := range candidates {
		if key := keyFor(parsed, candidate); bestKey.less(key) {
			best = candidate
			bestKey = key
		}
	}
	return best, nil
}
