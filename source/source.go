// Package source defines named source text used by lexer and error reports.
package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Source contains program text and an index of line starts.
type Source struct {
	name       string
	text       string
	lineStarts []int
}

// New creates source with given name (may be empty) and text.
func New(name, text string) *Source {
	s := &Source{name: name, text: text}
	s.lineStarts = make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Name returns source name or empty string.
func (s *Source) Name() string {
	return s.name
}

// Text returns complete source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns text length in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// Lines returns the number of lines, a text without line feeds has one line.
func (s *Source) Lines() int {
	return len(s.lineStarts)
}

// LineCol converts byte offset to 1-based line and column (in runes).
// Offsets outside of text are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.text) {
		pos = len(s.text)
	}

	index := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	return index + 1, utf8.RuneCountInString(s.text[s.lineStarts[index]:pos]) + 1
}

// Pos converts 1-based line and column to byte offset, the result is clamped to text bounds.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}
	if line > len(s.lineStarts) {
		return len(s.text)
	}

	pos := s.lineStarts[line-1]
	for ; col > 1 && pos < len(s.text) && s.text[pos] != '\n'; col-- {
		_, size := utf8.DecodeRuneInString(s.text[pos:])
		pos += size
	}
	return pos
}

// Line returns text of 1-based line without line terminator or empty string for invalid line number.
func (s *Source) Line(line int) string {
	if line <= 0 || line > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[line-1]
	end := len(s.text)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}
