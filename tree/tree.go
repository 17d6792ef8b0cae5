// Package tree defines syntax tree built by grammar engine and functions to traverse and compare trees.
//
// A tree consists of non-terminal nodes (*NonTermNode) tagged by grammar rule
// and token nodes (*TokenNode) wrapping lexer tokens. Children are kept in a slice,
// nodes have no parent links, trees are never modified after construction.
package tree

import (
	"github.com/ava12/pseudo/lexer"
)

// Tag identifies the grammar rule that produced a non-terminal node.
type Tag int

// Node is a syntax tree node.
type Node interface {
	// IsNonTerm returns true for *NonTermNode.
	IsNonTerm() bool
	// TypeName returns rule name for non-terminals and token kind name for tokens.
	TypeName() string
	// Token returns captured token for token node or the first token consumed by non-terminal.
	// May return nil.
	Token() *lexer.Token
	// SourceName, Line, and Col return position of Token() or zero values.
	SourceName() string
	Line() int
	Col() int
}

// TokenNode is a leaf node.
type TokenNode struct {
	token *lexer.Token
}

// NewTokenNode wraps a token, t must not be nil.
func NewTokenNode(t *lexer.Token) *TokenNode {
	return &TokenNode{t}
}

func (tn *TokenNode) IsNonTerm() bool {
	return false
}

func (tn *TokenNode) TypeName() string {
	return tn.token.Kind().String()
}

func (tn *TokenNode) Token() *lexer.Token {
	return tn.token
}

func (tn *TokenNode) Kind() lexer.Kind {
	return tn.token.Kind()
}

func (tn *TokenNode) Text() string {
	return tn.token.Text()
}

func (tn *TokenNode) SourceName() string {
	return tn.token.SourceName()
}

func (tn *TokenNode) Line() int {
	return tn.token.Line()
}

func (tn *TokenNode) Col() int {
	return tn.token.Col()
}

// NonTermNode is an interior node.
type NonTermNode struct {
	tag      Tag
	typeName string
	token    *lexer.Token
	children []Node
}

// NewNonTermNode creates childless node, tok is the first token consumed by the rule (may be nil).
func NewNonTermNode(tag Tag, typeName string, tok *lexer.Token) *NonTermNode {
	return &NonTermNode{tag: tag, typeName: typeName, token: tok}
}

func (ntn *NonTermNode) IsNonTerm() bool {
	return true
}

func (ntn *NonTermNode) Tag() Tag {
	return ntn.tag
}

func (ntn *NonTermNode) TypeName() string {
	return ntn.typeName
}

func (ntn *NonTermNode) Token() *lexer.Token {
	return ntn.token
}

func (ntn *NonTermNode) SourceName() string {
	if ntn.token == nil {
		return ""
	}
	return ntn.token.SourceName()
}

func (ntn *NonTermNode) Line() int {
	if ntn.token == nil {
		return 0
	}
	return ntn.token.Line()
}

func (ntn *NonTermNode) Col() int {
	if ntn.token == nil {
		return 0
	}
	return ntn.token.Col()
}

// Children returns child nodes, the slice must not be modified.
func (ntn *NonTermNode) Children() []Node {
	return ntn.children
}

// Len returns the number of direct children.
func (ntn *NonTermNode) Len() int {
	return len(ntn.children)
}

// Child returns i-th child or nil, negative i counts from the end (-1 is the last child).
func (ntn *NonTermNode) Child(i int) Node {
	if i < 0 {
		i += len(ntn.children)
	}
	if i < 0 || i >= len(ntn.children) {
		return nil
	}
	return ntn.children[i]
}

// AppendChild adds a node to the end of children list.
func (ntn *NonTermNode) AppendChild(n Node) {
	ntn.children = append(ntn.children, n)
}

// AppendChildren adds nodes to the end of children list.
func (ntn *NonTermNode) AppendChildren(ns ...Node) {
	ntn.children = append(ntn.children, ns...)
}
