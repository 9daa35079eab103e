// Package stem canonicalizes audio filename stems. A stem is the base name
// of a file with its extension removed; it never contains a path separator.
package stem

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Mode selects which ruleset applies to a folder.
type Mode string

const (
	// ModeTapes applies the chapter rewrite used for full tape rips.
	ModeTapes Mode = "tapes"
	// ModeTracks applies common cleanup only.
	ModeTracks Mode = "tracks"
)

// ErrUnknownMode is returned when a Mode outside the fixed enumeration is
// passed to Normalize. This is a programming error, not a data error.
var ErrUnknownMode = errors.New("unknown normalization mode")

// Cleanup patterns, applied in the order they are listed. Prefix
// canonicalization must see the compact form first so "DJScrew" is expanded
// before the spaced variant fixes casing and spacing.
var (
	// Trailing " [abc123]" identifier tags appended by download tools.
	reBracketTag = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)

	reWhitespace = regexp.MustCompile(`\s+`)
	reHyphen     = regexp.MustCompile(`\s*-\s*`)

	reCompactPrefix = regexp.MustCompile(`(?i)^\s*DJScrew\s*`)
	rePrefix        = regexp.MustCompile(`(?i)^\s*DJ\s*Screw\s*`)

	// Chapter pattern for tapes, matched against the cleaned stem:
	//   "DJ Screw Chapter 120 10 Deep" -> chapter 120, remainder "10 Deep".
	// The remainder group is optional so a bare "DJ Screw Chapter 42"
	// still canonicalizes.
	reChapter = regexp.MustCompile(`(?i)^DJ Screw\s+Chapter\s+(\d+)(?:\s+(.*))?$`)
)

// Normalize rewrites stem into its canonical form for the given mode.
// It is deterministic and idempotent: feeding its own output back in
// returns the same string.
func Normalize(stem string, mode Mode) (string, error) {
	switch mode {
	case ModeTracks:
		return cleanCommon(stem), nil
	case ModeTapes:
		return rewriteChapter(cleanCommon(stem)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// cleanCommon applies the mode-independent cleanup stage:
// Unicode fold, tag strip, prefix canonicalization, whitespace collapse,
// hyphen spacing, and a final trim of spaces and hyphens.
func cleanCommon(s string) string {
	s = fold(s)
	s = strings.TrimSpace(s)

	// Strip until no tag remains: stacked tags like "Song [a] [b]" would
	// otherwise need one pass per tag, breaking idempotence.
	for {
		stripped := reBracketTag.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	if reCompactPrefix.MatchString(s) {
		s = reCompactPrefix.ReplaceAllString(s, "DJ Screw ")
	}
	if loc := rePrefix.FindStringIndex(s); loc != nil {
		s = "DJ Screw " + s[loc[1]:]
	}

	s = strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
	s = reHyphen.ReplaceAllString(s, " - ")

	return strings.Trim(s, " -")
}

// rewriteChapter rebuilds "DJ Screw Chapter N rest" as
// "DJ Screw - Chapter N - rest". When the remainder is empty the trailing
// separator is left off. A rewritten stem no longer matches the pattern
// (the dash breaks the plain-whitespace requirement), so the rewrite is
// applied at most once.
func rewriteChapter(s string) string {
	m := reChapter.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	rest := strings.Trim(m[2], " -")
	if rest == "" {
		return "DJ Screw - Chapter " + m[1]
	}

	return "DJ Screw - Chapter " + m[1] + " - " + rest
}
