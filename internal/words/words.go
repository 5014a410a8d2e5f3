// Package words splits declared identifiers into their constituent words
// for snake_case derivation of table and enum type names.
package words

import (
	"strings"
	"unicode"
)

// Split returns the words of name in the order they appear.
//
// The input is first tokenized on any rune that is not a letter or digit
// (underscores included), then each token is split on a lower-to-upper
// boundary, then before the last capital of an all-caps run followed by a
// lowercase rune, then on a digit-to-letter boundary. An empty input yields
// no words.
func Split(name string) []string {
	ws := tokens(name)
	ws = splitAll(ws, lowerUpper)
	ws = splitAll(ws, acronymEnd)
	ws = splitAll(ws, digitLetter)
	return ws
}

// Snake converts name to snake_case using Split.
func Snake(name string) string {
	ws := Split(name)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// tokens returns the maximal letter/digit runs of s.
func tokens(s string) []string {
	var (
		ws  []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			ws = append(ws, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return ws
}

// boundaryFunc reports whether a word splits immediately before index i.
type boundaryFunc func(rs []rune, i int) bool

func lowerUpper(rs []rune, i int) bool {
	return unicode.IsLower(rs[i-1]) && unicode.IsUpper(rs[i])
}

// acronymEnd splits HTMLParser-style runs: the boundary sits before the
// final capital of an upper-case run when a lowercase rune follows it.
func acronymEnd(rs []rune, i int) bool {
	return unicode.IsUpper(rs[i-1]) && unicode.IsUpper(rs[i]) &&
		i+1 < len(rs) && unicode.IsLower(rs[i+1])
}

func digitLetter(rs []rune, i int) bool {
	return unicode.IsDigit(rs[i-1]) && unicode.IsLetter(rs[i])
}

func splitAll(ws []string, boundary boundaryFunc) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, splitWord(w, boundary)...)
	}
	return out
}

func splitWord(w string, boundary boundaryFunc) []string {
	rs := []rune(w)
	var (
		parts []string
		start int
	)
	for i := 1; i < len(rs); i++ {
		if boundary(rs, i) {
			parts = append(parts, string(rs[start:i]))
			start = i
		}
	}
	if start == 0 {
		return []string{w}
	}
	return append(parts, string(rs[start:]))
}
