package lexer

import (
	"strings"
)

// Keyword maps a keyword kind to its spelling. Spelling may contain several words separated by spaces.
type Keyword struct {
	Kind     Kind
	Spelling string
}

// KeywordTable is an ordered list of keyword spellings.
// When spellings collide the first completed entry wins.
type KeywordTable []Keyword

var logicalNames = [...]string{"read", "write", "if", "then", "else", "while", "do", "repeat", "until", "for"}

// LogicalNames returns keyword names in canonical order, e.g. "read", "write", "if".
func LogicalNames() []string {
	return append([]string(nil), logicalNames[:]...)
}

// KeywordKind returns token kind for logical keyword name.
func KeywordKind(name string) (Kind, bool) {
	for i, n := range logicalNames {
		if n == name {
			return Read + Kind(i), true
		}
	}
	return 0, false
}

// LogicalName returns logical name of keyword kind or empty string.
func LogicalName(k Kind) string {
	if !k.IsKeyword() {
		return ""
	}
	return logicalNames[k-Read]
}

// English returns default keyword table, spellings equal logical names.
func English() KeywordTable {
	res := make(KeywordTable, len(logicalNames))
	for i, n := range logicalNames {
		res[i] = Keyword{Read + Kind(i), n}
	}
	return res
}

// Spelling returns the first spelling of keyword kind.
func (kt KeywordTable) Spelling(k Kind) (string, bool) {
	for _, kw := range kt {
		if kw.Kind == k {
			return kw.Spelling, true
		}
	}
	return "", false
}

type compiledKeyword struct {
	kind  Kind
	text  string
	words []string
}

func (kt KeywordTable) compile() []compiledKeyword {
	res := make([]compiledKeyword, 0, len(kt))
	for _, kw := range kt {
		words := strings.Fields(kw.Spelling)
		if len(words) == 0 {
			continue
		}
		res = append(res, compiledKeyword{kw.Kind, strings.Join(words, " "), words})
	}
	return res
}
