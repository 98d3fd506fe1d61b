// Package textflow wraps, hyphenates, and places text against a measured
// width. Everything here is a pure function over an injected width
// callback; the package performs no rendering and holds no state beyond
// the optional measurement memo in CachedMeasurer.
package textflow

import "strings"

// WrapText breaks text into lines no wider than maxWidth.
//
// Hard line breaks are preserved: each source line wraps independently
// and content is never merged across a break. Within a line, words are
// accumulated greedily; a word that cannot join the current line starts a
// new one. A single word wider than maxWidth is still placed (the
// function has no failure mode), split across lines with trailing
// hyphens when hyphenate is true.
func WrapText(text string, maxWidth float64, hyphenate bool, width WidthFunc) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, segment := range strings.Split(normalized, "\n") {
		lines = append(lines, wrapSegment(segment, maxWidth, hyphenate, width)...)
	}
	return lines
}

// wrapSegment wraps one hard-break-free run of text. An empty or
// whitespace-only segment stays a single empty line so that blank source
// lines keep their vertical slot.
func wrapSegment(segment string, maxWidth float64, hyphenate bool, width WidthFunc) []string {
	words := strings.Fields(segment)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		if current != "" {
			candidate := current + " " + word
			if width(candidate) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = ""
		}

		// The word opens a fresh line. An overlong word is placed
		// regardless; with hyphenation on it is split and the tail
		// fragment stays open for the words that follow.
		if hyphenate && width(word) > maxWidth {
			parts := HyphenateWord(word, maxWidth, width)
			lines = append(lines, parts[:len(parts)-1]...)
			current = parts[len(parts)-1]
			continue
		}
		current = word
	}
	lines = append(lines, current)

	return lines
}
