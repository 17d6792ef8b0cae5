package grammar

import (
	"fmt"
	"strings"

	"github.com/ava12/pseudo"
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/tree"
)

// Error codes used by grammar engine:
const (
	// ExpectedTokenError indicates that a committed rule expected a token of specific kinds.
	ExpectedTokenError = pseudo.SyntaxErrors + iota
	// ExpectedRuleError indicates that a committed rule expected a sub-rule.
	ExpectedRuleError
	// NoMatchError indicates that root rule is not applicable to the first token.
	NoMatchError
	// TrailingTokenError indicates that root rule has not consumed all tokens.
	TrailingTokenError
	// EmptyMatchError indicates that root rule has produced an empty node.
	EmptyMatchError
)

// ParseError describes a failure of a committed rule.
// Unwraps to *pseudo.Error.
type ParseError struct {
	// Rule is the tag of failed rule.
	Rule     tree.Tag
	RuleName string
	// Expected contains expected token kinds if a token step failed.
	Expected lexer.KindSet
	// ExpectedRules contains expected rule names if a rule step failed.
	ExpectedRules []string
	// Token is the offending token.
	Token *lexer.Token

	err *pseudo.Error
}

func (pe *ParseError) Error() string {
	return pe.err.Message
}

func (pe *ParseError) Unwrap() error {
	return pe.err
}

func (pe *ParseError) Code() int {
	return pe.err.Code
}

func describeToken(t *lexer.Token) string {
	switch t.Kind() {
	case lexer.EndOfLine, lexer.EndOfFile, lexer.Indent, lexer.Dedent:
		return t.Kind().String()
	default:
		return fmt.Sprintf("%s %q", t.Kind(), t.Text())
	}
}

func expectedTokenError(pe *ParseError) *pseudo.Error {
	return pseudo.FormatErrorPos(pe.Token, ExpectedTokenError, "expected %s, got %s inside rule %s",
		strings.ReplaceAll(pe.Expected.String(), ", ", " or "), describeToken(pe.Token), pe.RuleName)
}

func expectedRuleError(pe *ParseError) *pseudo.Error {
	return pseudo.FormatErrorPos(pe.Token, ExpectedRuleError, "expected %s, got %s inside rule %s",
		strings.Join(pe.ExpectedRules, " or "), describeToken(pe.Token), pe.RuleName)
}

func emptyInputError(rule string) *pseudo.Error {
	return pseudo.FormatError(NoMatchError, "no input for rule %s", rule)
}

func noMatchError(rule string, t *lexer.Token) *pseudo.Error {
	return pseudo.FormatErrorPos(t, NoMatchError, "unexpected %s, cannot start rule %s", describeToken(t), rule)
}

func trailingTokenError(rule string, t *lexer.Token) *pseudo.Error {
	return pseudo.FormatErrorPos(t, TrailingTokenError, "unexpected %s after the end of rule %s", describeToken(t), rule)
}

func emptyMatchError(rule string, t *lexer.Token) *pseudo.Error {
	return pseudo.FormatErrorPos(t, EmptyMatchError, "rule %s matched nothing", rule)
}
