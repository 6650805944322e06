package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw user input for layout. It applies Unicode NFC so
// composed and decomposed input produce the same glyphs, unifies line
// endings, collapses whitespace runs inside each line and drops empty lines.
func Normalize(s string) []string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var paragraphs []string
	for _, line := range strings.Split(s, "\n") {
		if p := strings.Join(strings.Fields(line), " "); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Wrap greedily packs the words of a paragraph into lines of at most
// maxChars runes. A word longer than maxChars is split into maxChars-sized
// chunks. maxChars <= 0 disables wrapping.
func Wrap(paragraph string, maxChars int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return nil
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if wl > maxChars {
			flush()
			chunks := splitRunes(w, maxChars)
			// The tail chunk may still share a line with following words.
			for _, c := range chunks[:len(chunks)-1] {
				lines = append(lines, c)
			}
			last := chunks[len(chunks)-1]
			cur.WriteString(last)
			curLen = utf8.RuneCountInString(last)
			continue
		}
		if curLen > 0 && curLen+1+wl <= maxChars {
			cur.WriteByte(' ')
			cur.WriteString(w)
			curLen += 1 + wl
			continue
		}
		flush()
		cur.WriteString(w)
		curLen = wl
	}
	flush()
	return lines
}

// splitRunes cuts s into chunks of n runes; the last chunk may be shorter.
func splitRunes(s string, n int) []string {
	var out []string
	runes := []rune(s)
	for len(runes) > n {
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return append(out, string(runes))
}

// countVisible returns the number of non-space runes across lines.
func countVisible(lines []string) int {
	n := 0
	for _, l := range lines {
		for _, r := range l {
			if !unicode.IsSpace(r) {
				n++
			}
		}
	}
	return n
}
