package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes and drops combining marks: "México" -> "Mexico".
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeAnswer lowercases, trims, and strips accents so comparisons are
// case- and diacritic-insensitive.
func normalizeAnswer(s string) string {
	out, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Collaboration markers: everything from the marker on is dropped to accept
// the primary artist name alone.
var collabMarkers = []string{
	" feat. ", " feat ", " ft. ", " ft ", " featuring ", " & ", " and ", " with ",
}

// acceptableAnswers expands the canonical answer into the variant set players
// are matched against: primary artist without collaborators, name without a
// leading "The ", title without a trailing parenthetical.
func acceptableAnswers(answer string) []string {
	canonical := normalizeAnswer(answer)
	if canonical == "" {
		return nil
	}

	seen := map[string]bool{canonical: true}
	variants := []string{canonical}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	// Each rule also applies to variants added by earlier rules, so
	// "The Beatles (Remastered)" yields "beatles" as well.
	for i := 0; i < len(variants); i++ {
		v := variants[i]

		for _, marker := range collabMarkers {
			if idx := strings.Index(v, marker); idx > 0 {
				add(v[:idx])
			}
		}
		if rest, ok := strings.CutPrefix(v, "the "); ok {
			add(rest)
		}
		if idx := strings.LastIndex(v, "("); idx > 0 {
			add(v[:idx])
		}
	}

	return variants
}

// matchAnswer applies the deliberately lenient policy: exact match against
// the canonical answer, or equality/containment either way against any
// accepted variant. Loose by design; very short answers can produce false
// positives, which is a known property of the matcher, kept for parity with
// how the game has always scored.
func matchAnswer(input string, key answerKey) bool {
	n := normalizeAnswer(input)
	if n == "" {
		return false
	}

	if n == normalizeAnswer(key.Answer) {
		return true
	}
	for _, v := range key.Accepted {
		if n == v || strings.Contains(n, v) || strings.Contains(v, n) {
			return true
		}
	}
	return false
}
