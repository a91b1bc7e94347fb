package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultMarkers are the single-character difficulty labels the catalog appends to titles.
var DefaultMarkers = []string{"鬼", "激", "踊", "楽", "習"}

// Markers the catalog uses for the two tracked difficulties.
const (
	ChallengeMarker = "(鬼)"
	ExpertMarker    = "(激)"
)

// Rules configures marker handling. The zero value is not useful; use [DefaultRules] or [NewRules].
type Rules struct {
	suffixes  []string
	challenge string
	expert    string
}

// DefaultRules returns the marker set used by the tier's catalog.
func DefaultRules() Rules {
	return NewRules(ChallengeMarker, ExpertMarker, DefaultMarkers...)
}

// NewRules builds [Rules] from the challenge and expert markers (e.g. "(鬼)") and the set of
// single-character labels stripped from the end of titles when fingerprinting.
func NewRules(challenge, expert string, markers ...string) Rules {
	suffixes := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		suffixes = append(suffixes, "("+m+")")
	}
	return Rules{suffixes: suffixes, challenge: challenge, expert: expert}
}

// Fingerprint returns the comparison key of raw using [DefaultRules].
func Fingerprint(raw string) string {
	return defaultRules.Fingerprint(raw)
}

// Fingerprint returns the comparison key of a raw song title.
//
// Two titles that differ only by a trailing difficulty marker, punctuation, spacing,
// letter case or character width produce the same key. A marker is only removed when
// it ends the string, so "Song(鬼)Remix" keeps its 鬼.
func (r Rules) Fingerprint(raw string) string {
	if raw == "" {
		return ""
	}

	s := norm.NFKC.String(raw)
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if keepRune(c) {
			b.WriteRune(unicode.ToLower(c))
		}
	}

	// Dropping symbols can leave a kana next to a combining sound mark; composing
	// them here keeps Fingerprint(Fingerprint(s)) == Fingerprint(s).
	return norm.NFKC.String(b.String())
}

func keepRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c >= 0x3040 && c <= 0x309F: // hiragana
		return true
	case c >= 0x30A0 && c <= 0x30FF: // katakana
		return true
	case c >= 0x4E00 && c <= 0x9FFF: // CJK unified ideographs
		return true
	}
	return false
}

var defaultRules = DefaultRules()
