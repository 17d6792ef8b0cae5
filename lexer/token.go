package lexer

import (
	"math/bits"
	"strings"

	"github.com/ava12/pseudo/source"
)

// Kind is the token kind.
type Kind int

// Token kinds. All values are less than 64 so that kinds fit into KindSet.
const (
	Plus Kind = iota
	Minus
	Multiply
	Divide
	Modulus
	Power
	LeftSquareBracket
	RightSquareBracket
	LeftParenthesis
	RightParenthesis
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessOrEqual
	GreaterOrEqual
	LogicalAnd
	LogicalOr
	LogicalNot
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	BitwiseNot
	ShiftLeft
	ShiftRight
	Assign
	Comma
	Number
	String
	Identifier
	Read
	Write
	If
	Then
	Else
	While
	Do
	Repeat
	Until
	For
	EndOfLine
	EndOfFile
	Tab
	Indent
	Dedent

	kindCount
)

var kindNames = [kindCount]string{
	"PLUS", "MINUS", "MULTIPLY", "DIVIDE", "MODULUS", "POWER",
	"LEFT_SQUARE_BRACKET", "RIGHT_SQUARE_BRACKET", "LEFT_PARENTHESIS", "RIGHT_PARENTHESIS",
	"EQUAL", "NOT_EQUAL", "LESS_THAN", "GREATER_THAN", "LESS_OR_EQUAL", "GREATER_OR_EQUAL",
	"LOGICAL_AND", "LOGICAL_OR", "LOGICAL_NOT",
	"BITWISE_AND", "BITWISE_OR", "BITWISE_XOR", "BITWISE_NOT", "SHIFT_LEFT", "SHIFT_RIGHT",
	"ASSIGN", "COMMA", "NUMBER", "STRING", "IDENTIFIER",
	"READ", "WRITE", "IF", "THEN", "ELSE", "WHILE", "DO", "REPEAT", "UNTIL", "FOR",
	"END_OF_LINE", "END_OF_FILE", "TAB", "INDENT", "DEDENT",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// IsKeyword reports whether k is one of keyword kinds (Read through For).
func (k Kind) IsKeyword() bool {
	return k >= Read && k <= For
}

func (k Kind) isWord() bool {
	return k == Number || k == Identifier || k.IsKeyword()
}

// KindSet represents a set of token kinds, each one is coded as 1 << kind.
type KindSet uint64

// Kinds creates a set containing given kinds.
func Kinds(ks ...Kind) KindSet {
	var s KindSet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

// Contains reports whether the set contains k.
func (s KindSet) Contains(k Kind) bool {
	return k >= 0 && k < kindCount && s&(1<<k) != 0
}

// Kinds returns set elements in ascending order.
func (s KindSet) Kinds() []Kind {
	res := make([]Kind, 0, bits.OnesCount64(uint64(s)))
	for s != 0 {
		k := bits.TrailingZeros64(uint64(s))
		res = append(res, Kind(k))
		s &^= 1 << k
	}
	return res
}

func (s KindSet) String() string {
	names := make([]string, 0, bits.OnesCount64(uint64(s)))
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

// Token is an immutable lexeme.
type Token struct {
	kind      Kind
	text      string
	source    *source.Source
	line, col int
}

// NewToken creates a token, src may be nil.
func NewToken(kind Kind, text string, src *source.Source, line, col int) *Token {
	return &Token{kind, text, src, line, col}
}

func (t *Token) Kind() Kind {
	return t.kind
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Source() *source.Source {
	return t.source
}

func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	}
	return t.source.Name()
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

// synthesized creates a token of given kind at the position of t.
func (t *Token) synthesized(kind Kind) *Token {
	return &Token{kind, "", t.source, t.line, t.col}
}
