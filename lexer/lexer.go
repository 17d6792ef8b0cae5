// Package lexer converts pseudocode source text to a token stream.
//
// Lexer never fails: every character of source text either belongs to some token or is skipped
// (spaces, comments). Unrecognized characters start identifiers.
//
// The result of Tokenize is already processed by layout pass (see layout.go): TAB tokens
// are replaced with INDENT/DEDENT tokens, blank lines are removed, and the stream ends
// with exactly one END_OF_FILE token.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ava12/pseudo/source"
)

var doubleCharOps = map[string]Kind{
	"==": Equal,
	"!=": NotEqual,
	"<=": LessOrEqual,
	">=": GreaterOrEqual,
	"<<": ShiftLeft,
	">>": ShiftRight,
	"&&": LogicalAnd,
	"||": LogicalOr,
	"**": Power,
	"<-": Assign,
}

var singleCharOps = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Multiply,
	'/': Divide,
	'%': Modulus,
	'^': BitwiseXor,
	'[': LeftSquareBracket,
	']': RightSquareBracket,
	'(': LeftParenthesis,
	')': RightParenthesis,
	',': Comma,
	'=': Assign,
	'!': LogicalNot,
	'<': LessThan,
	'>': GreaterThan,
	'&': BitwiseAnd,
	'|': BitwiseOr,
	'~': BitwiseNot,
}

const tabSpaces = "    "

type scanner struct {
	src      *source.Source
	text     string
	pos      int
	keywords []compiledKeyword
	tokens   []*Token
	wordRun  int // number of word tokens at the tail of tokens
}

// Tokenize converts source text to token stream using given keyword table.
// English keywords are used if kt is empty.
func Tokenize(src *source.Source, kt KeywordTable) []*Token {
	return layout(scan(src, kt))
}

// TokenizeString converts unnamed source text to token stream.
func TokenizeString(text string, kt KeywordTable) []*Token {
	return Tokenize(source.New("", text), kt)
}

func scan(src *source.Source, kt KeywordTable) []*Token {
	if len(kt) == 0 {
		kt = English()
	}
	s := &scanner{src: src, text: src.Text(), keywords: kt.compile()}
	s.scan()
	return s.tokens
}

func (s *scanner) scan() {
	for s.pos < len(s.text) {
		start := s.pos
		c := s.text[start]
		switch {
		case c == ' ':
			if strings.HasPrefix(s.text[start:], tabSpaces) {
				s.emit(Tab, start, start+len(tabSpaces))
			} else {
				s.pos++
			}
		case c == '\t':
			s.emit(Tab, start, start+1)
		case c == '\r':
			end := start + 1
			if end < len(s.text) && s.text[end] == '\n' {
				end++
			}
			s.emit(EndOfLine, start, end)
		case c == '\n' || c == ';':
			s.emit(EndOfLine, start, start+1)
		case c == '/' && strings.HasPrefix(s.text[start:], "//"):
			s.skipComment()
		case c == '"' || c == '\'':
			s.scanString(c)
		default:
			s.scanOperatorOrWord()
		}
	}
	s.emit(EndOfFile, len(s.text), len(s.text))
}

func (s *scanner) emit(kind Kind, start, end int) {
	s.emitText(kind, s.text[start:end], start, end)
}

func (s *scanner) emitText(kind Kind, text string, start, end int) {
	line, col := s.src.LineCol(start)
	s.tokens = append(s.tokens, NewToken(kind, text, s.src, line, col))
	s.pos = end
	if kind.isWord() {
		s.wordRun++
	} else {
		s.wordRun = 0
	}
}

func (s *scanner) skipComment() {
	end := strings.IndexAny(s.text[s.pos:], "\r\n")
	if end < 0 {
		s.pos = len(s.text)
	} else {
		s.pos += end
	}
}

func (s *scanner) scanString(delim byte) {
	start := s.pos
	pos := start + 1
	var sb strings.Builder
	for pos < len(s.text) {
		c := s.text[pos]
		if c == '\\' && pos+1 < len(s.text) && s.text[pos+1] == delim {
			sb.WriteByte(delim)
			pos += 2
			continue
		}

		pos++
		if c == delim {
			break
		}
		sb.WriteByte(c)
	}
	s.emitText(String, sb.String(), start, pos)
}

func (s *scanner) scanOperatorOrWord() {
	start := s.pos
	if start+2 <= len(s.text) {
		if kind, found := doubleCharOps[s.text[start:start+2]]; found {
			s.emit(kind, start, start+2)
			return
		}
	}
	if kind, found := singleCharOps[s.text[start]]; found {
		s.emit(kind, start, start+1)
		return
	}

	_, size := utf8.DecodeRuneInString(s.text[start:])
	end := start + size
	for end < len(s.text) {
		r, size := utf8.DecodeRuneInString(s.text[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	s.word(start, end)
}

func isWordRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// word emits a token for a word, replacing partial words of a multi-word keyword if needed.
func (s *scanner) word(start, end int) {
	text := s.text[start:end]
	for _, kw := range s.keywords {
		n := len(kw.words) - 1
		if kw.words[n] != text || n > s.wordRun {
			continue
		}

		prev := s.tokens[len(s.tokens)-n:]
		matched := true
		for i, t := range prev {
			if t.text != kw.words[i] {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		if n == 0 {
			s.emit(kw.kind, start, end)
			return
		}

		first := prev[0]
		s.tokens = s.tokens[:len(s.tokens)-n]
		s.wordRun -= n
		s.tokens = append(s.tokens, NewToken(kw.kind, kw.text, s.src, first.line, first.col))
		s.wordRun++
		s.pos = end
		return
	}

	if isNumber(text) {
		s.emit(Number, start, end)
	} else {
		s.emit(Identifier, start, end)
	}
}

func isNumber(text string) bool {
	digits := 0
	dots := 0
	for _, r := range text {
		switch {
		case r == '.':
			dots++
		case r >= '0' && r <= '9':
			digits++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
