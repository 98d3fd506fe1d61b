package textflow

import "unicode"

// consonantClusters are two-letter onsets that read as one sound. A
// syllable boundary never lands between the two letters of a cluster.
var consonantClusters = map[string]bool{
	"bl": true, "br": true, "cl": true, "cr": true, "dr": true,
	"fl": true, "fr": true, "gl": true, "gr": true, "pl": true,
	"pr": true, "sc": true, "sk": true, "sl": true, "sm": true,
	"sn": true, "sp": true, "st": true, "sw": true, "tr": true,
	"tw": true, "ch": true, "sh": true, "th": true, "wh": true,
	"ph": true, "qu": true,
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func isCluster(a, b rune) bool {
	return consonantClusters[string(unicode.ToLower(a))+string(unicode.ToLower(b))]
}

// syllableFragments splits a word at vowel-consonant transitions, keeping
// consonant clusters intact. Words under four letters, or containing
// anything but letters, come back whole. Joined in order, the fragments
// always reproduce the word exactly.
func syllableFragments(word string) []string {
	runes := []rune(word)
	if len(runes) < 4 {
		return []string{word}
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return []string{word}
		}
	}

	var fragments []string
	start := 0
	// A boundary before runes[i] keeps at least two letters on each side.
	for i := 2; i <= len(runes)-2; i++ {
		if i-start < 2 || isVowel(runes[i]) {
			continue
		}
		prev, next := runes[i-1], runes[i+1]

		split := false
		switch {
		case isVowel(prev):
			// Vowel then consonant: split before the consonant when a
			// vowel or a whole cluster follows it.
			split = isVowel(next) || isCluster(runes[i], next)
		case !isCluster(prev, runes[i]):
			// Two loose consonants: split between them when the second
			// opens a new vowel or starts a cluster.
			split = isVowel(next) || isCluster(runes[i], next)
		}
		if split {
			fragments = append(fragments, string(runes[start:i]))
			start = i
		}
	}
	fragments = append(fragments, string(runes[start:]))

	return fragments
}

// HyphenateWord splits an overlong word into line-sized parts, every part
// except the last carrying a trailing hyphen. Syllable fragments are
// reassembled greedily against maxWidth first; when the word will not
// syllabify, or a lone fragment exceeds maxWidth by itself, the split
// falls back to characters so that progress is always made. Stripping one
// trailing hyphen from each non-final part and concatenating restores the
// original word.
func HyphenateWord(word string, maxWidth float64, width WidthFunc) []string {
	fragments := syllableFragments(word)
	if len(fragments) >= 2 {
		if parts := reassembleFragments(fragments, maxWidth, width); len(parts) > 0 {
			return parts
		}
	}
	return splitByChars(word, maxWidth, width)
}

// reassembleFragments joins syllables back up to maxWidth. Non-final
// candidates are measured with their trailing hyphen so the printed line
// fits. Returns nil when any single fragment overflows a line on its own;
// the caller then re-splits by characters.
func reassembleFragments(fragments []string, maxWidth float64, width WidthFunc) []string {
	var parts []string
	current := ""
	for i := 0; i < len(fragments); i++ {
		candidate := current + fragments[i]
		probe := candidate
		if i < len(fragments)-1 {
			probe += "-"
		}
		if width(probe) <= maxWidth {
			current = candidate
			continue
		}
		if current == "" {
			return nil
		}
		parts = append(parts, current+"-")
		current = ""
		i--
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// splitByChars packs runes greedily, hyphenating every non-final chunk.
// Each chunk holds at least one rune, so even a maxWidth below a single
// glyph terminates.
func splitByChars(word string, maxWidth float64, width WidthFunc) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return []string{""}
	}

	var parts []string
	current := ""
	for _, r := range runes {
		candidate := current + string(r)
		if current != "" && width(candidate+"-") > maxWidth {
			parts = append(parts, current+"-")
			current = string(r)
			continue
		}
		current = candidate
	}
	parts = append(parts, current)

	return parts
}
