// Package slug derives the URL-safe identifiers used for categories, posts,
// and tags. A category slug is a '/'-joined path of segments, one per
// ancestor; everything else uses a single flat segment.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the maximum length of a full hierarchical slug.
const MaxLength = 255

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	segmentPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// NFD decomposition followed by removal of combining marks strips
	// diacritics ("Ñoño" -> "Nono") before the ASCII-only collapse.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Segment converts a display name into a single URL-safe slug segment.
// It lowercases, strips diacritics, collapses every run of characters
// outside [a-z0-9] into a single hyphen, and trims leading and trailing
// hyphens. Segment is total: a name without any alphanumeric characters
// yields "", which callers must reject as a validation error.
func Segment(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ResolveUnique returns candidate if it is not already taken, otherwise the
// first of candidate-2, candidate-3, ... that is free. Disambiguation is
// needed when two distinct names collapse to the same segment ("C++" and
// "C#" both become "c").
func ResolveUnique(candidate string, taken map[string]struct{}) string {
	if _, used := taken[candidate]; !used {
		return candidate
	}
	for n := 2; ; n++ {
		next := fmt.Sprintf("%s-%d", candidate, n)
		if _, used := taken[next]; !used {
			return next
		}
	}
}

// IsValidSegment reports whether s is a well-formed slug segment.
func IsValidSegment(s string) bool {
	return segmentPattern.MatchString(s)
}

// JoinPath composes a full hierarchical slug from the ancestor segments
// (root-first) and the node's own segment. Every segment must be well-formed
// and the joined path must not exceed MaxLength.
func JoinPath(ancestorSegments []string, ownSegment string) (string, error) {
	parts := make([]string, 0, len(ancestorSegments)+1)
	for _, seg := range ancestorSegments {
		if !IsValidSegment(seg) {
			return "", fmt.Errorf("invalid slug segment %q", seg)
		}
		parts = append(parts, seg)
	}
	if !IsValidSegment(ownSegment) {
		return "", fmt.Errorf("invalid slug segment %q", ownSegment)
	}
	parts = append(parts, ownSegment)

	path := strings.Join(parts, "/")
	if len(path) > MaxLength {
		return "", fmt.Errorf("slug %q exceeds %d characters", path, MaxLength)
	}
	return path, nil
}

// IsValidPath reports whether s is a well-formed '/'-joined hierarchical
// slug of at most MaxLength characters.
func IsValidPath(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	for _, seg := range strings.Split(s, "/") {
		if !IsValidSegment(seg) {
			return false
		}
	}
	return true
}

// LastSegment returns the final segment of a hierarchical slug.
func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
