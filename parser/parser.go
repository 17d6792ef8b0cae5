// Package parser defines the pseudocode grammar and the parse driver.
//
// Statements:
//
//	Program     = {Statement}, END_OF_FILE;
//	Statement   = Assignment EOL | Print EOL | Read EOL | DoWhile EOL | RepeatUntil EOL | If | While | For | EOL;
//	Assignment  = IDENTIFIER, ASSIGN, Expression;
//	Print       = WRITE, [Expression], {",", Expression};
//	Read        = READ, IDENTIFIER, {",", IDENTIFIER};
//	If          = IF, Expression, THEN, [EOL], Body, [ELSE, [EOL], Body];
//	While       = WHILE, Expression, DO, [EOL], Body;
//	DoWhile     = DO, [EOL], Body, WHILE, Expression;
//	RepeatUntil = REPEAT, [EOL], Body, UNTIL, Expression;
//	For         = FOR, Assignment, ",", Expression, [",", Expression], DO, [EOL], Body;
//	Body        = Block | Statement;
//	Block       = INDENT, {Statement | Block}+, DEDENT, EOL;
//
// A compound statement header followed by a non-indented line governs that single statement.
//
// Expressions are built as a chain of binary levels from the loosest to the tightest:
// || && | ^ & != == < <= > >= << >> + - * / % **, then unary - + ! ~ and primary expressions:
// numbers, strings, identifiers, (grouping), and [floor].
// Each binary level node holds a flat list of operands, operator tokens are not kept.
// Every expression used by a statement is wrapped in Expression node.
package parser

import (
	"github.com/ava12/pseudo/grammar"
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/source"
	"github.com/ava12/pseudo/tree"
)

type binaryLevel struct {
	tag, subsequent tree.Tag
	name            string
	op              lexer.Kind
}

// binaryLevels lists binary operator levels from the loosest to the tightest.
var binaryLevels = []binaryLevel{
	{LogicalOr, SubsequentLogicalOr, "LogicalOr", lexer.LogicalOr},
	{LogicalAnd, SubsequentLogicalAnd, "LogicalAnd", lexer.LogicalAnd},
	{BitwiseOr, SubsequentBitwiseOr, "BitwiseOr", lexer.BitwiseOr},
	{BitwiseXor, SubsequentBitwiseXor, "BitwiseXor", lexer.BitwiseXor},
	{BitwiseAnd, SubsequentBitwiseAnd, "BitwiseAnd", lexer.BitwiseAnd},
	{NotEqual, SubsequentNotEqual, "NotEqual", lexer.NotEqual},
	{Equal, SubsequentEqual, "Equal", lexer.Equal},
	{LessThan, SubsequentLessThan, "LessThan", lexer.LessThan},
	{LessOrEqual, SubsequentLessOrEqual, "LessOrEqual", lexer.LessOrEqual},
	{GreaterThan, SubsequentGreaterThan, "GreaterThan", lexer.GreaterThan},
	{GreaterOrEqual, SubsequentGreaterOrEqual, "GreaterOrEqual", lexer.GreaterOrEqual},
	{ShiftLeft, SubsequentShiftLeft, "ShiftLeft", lexer.ShiftLeft},
	{ShiftRight, SubsequentShiftRight, "ShiftRight", lexer.ShiftRight},
	{Sum, SubsequentSum, "Sum", lexer.Plus},
	{Subtract, SubsequentSubtract, "Subtract", lexer.Minus},
	{Multiply, SubsequentMultiply, "Multiply", lexer.Multiply},
	{Divide, SubsequentDivide, "Divide", lexer.Divide},
	{Modulus, SubsequentModulus, "Modulus", lexer.Modulus},
	{Power, SubsequentPower, "Power", lexer.Power},
}

// Parser converts token streams to syntax trees, it is immutable and safe for concurrent use.
type Parser struct {
	grammar *grammar.Grammar
}

// New creates a parser with complete pseudocode grammar.
func New() *Parser {
	return &Parser{newGrammar()}
}

// Grammar returns grammar used by parser.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse builds a syntax tree rooted at Program node.
// Returns *grammar.ParseError or *pseudo.Error on failure.
func (p *Parser) Parse(tokens []*lexer.Token) (*tree.NonTermNode, error) {
	return p.grammar.Parse(Program, tokens)
}

// ParseSource tokenizes and parses source text using given keyword table (English if empty).
func (p *Parser) ParseSource(src *source.Source, kt lexer.KeywordTable) (*tree.NonTermNode, error) {
	return p.Parse(lexer.Tokenize(src, kt))
}

// ParseString tokenizes and parses unnamed source text using English keywords.
func (p *Parser) ParseString(text string) (*tree.NonTermNode, error) {
	return p.ParseSource(source.New("", text), nil)
}

func newGrammar() *grammar.Grammar {
	g := grammar.New(TagNames)
	defineStatements(g)
	defineExpressions(g)
	return g
}

func defineStatements(g *grammar.Grammar) {
	g.Define(Program).
		WithRule(Statement).ZeroOrMore().
		ThenToken(lexer.EndOfFile).Exclude().Once()

	for _, tag := range []tree.Tag{Assignment, Print, Read, DoWhile, RepeatUntil} {
		g.Define(Statement).
			WithRule(tag).NeverHoist().Once().
			ThenToken(lexer.EndOfLine).Exclude().Once()
	}
	for _, tag := range []tree.Tag{If, While, For} {
		g.Define(Statement).WithRule(tag).NeverHoist().Once()
	}
	g.Define(Statement).WithToken(lexer.EndOfLine).Exclude().Once()

	g.Define(Body).WithRule(Block).Hoist().Once()
	g.Define(Body).WithRule(Statement).Once()

	g.Define(Block).
		WithToken(lexer.Indent).Exclude().Once().
		ThenRule(BlockItem).Hoist().AtLeastOnce().
		ThenToken(lexer.Dedent).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().Once()
	g.Define(BlockItem).WithRule(Statement).Once()
	g.Define(BlockItem).WithRule(Block).Hoist().Once()

	g.Define(Assignment).
		WithToken(lexer.Identifier).Once().
		ThenToken(lexer.Assign).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once()

	g.Define(Print).
		WithToken(lexer.Write).Exclude().Once().
		ThenRule(Expression).NeverHoist().AtMostOnce().
		ThenRule(PrintNext).Hoist().ZeroOrMore()
	g.Define(PrintNext).
		WithToken(lexer.Comma).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once()

	g.Define(Read).
		WithToken(lexer.Read).Exclude().Once().
		ThenToken(lexer.Identifier).Once().
		ThenRule(ReadNext).Hoist().ZeroOrMore()
	g.Define(ReadNext).
		WithToken(lexer.Comma).Exclude().Once().
		ThenToken(lexer.Identifier).Once()

	g.Define(If).
		WithToken(lexer.If).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once().
		ThenToken(lexer.Then).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().AtMostOnce().
		ThenRule(Body).Hoist().Once().
		ThenRule(Else).NeverHoist().AtMostOnce()
	g.Define(Else).
		WithToken(lexer.Else).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().AtMostOnce().
		ThenRule(Body).Hoist().Once()

	g.Define(While).
		WithToken(lexer.While).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once().
		ThenToken(lexer.Do).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().AtMostOnce().
		ThenRule(Body).Hoist().Once()

	g.Define(DoWhile).
		WithToken(lexer.Do).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().AtMostOnce().
		ThenRule(Body).Hoist().Once().
		ThenToken(lexer.While).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once()

	g.Define(RepeatUntil).
		WithToken(lexer.Repeat).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().AtMostOnce().
		ThenRule(Body).Hoist().Once().
		ThenToken(lexer.Until).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once()

	g.Define(For).
		WithToken(lexer.For).Exclude().Once().
		ThenRule(Assignment).NeverHoist().Once().
		ThenToken(lexer.Comma).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once().
		ThenRule(ForStep).NeverHoist().AtMostOnce().
		ThenToken(lexer.Do).Exclude().Once().
		ThenToken(lexer.EndOfLine).Exclude().AtMostOnce().
		ThenRule(Body).Hoist().Once()
	g.Define(ForStep).
		WithToken(lexer.Comma).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once()
}

func defineExpressions(g *grammar.Grammar) {
	g.Define(Expression).WithRule(binaryLevels[0].tag).Once()

	for i, l := range binaryLevels {
		next := Unary
		if i+1 < len(binaryLevels) {
			next = binaryLevels[i+1].tag
		}
		g.Define(l.tag).
			WithRule(next).Once().
			ThenRule(l.subsequent).Hoist().ZeroOrMore()
		g.Define(l.subsequent).
			WithToken(l.op).Exclude().Once().
			ThenRule(next).Once()
	}

	unaries := []struct {
		tag tree.Tag
		op  lexer.Kind
	}{
		{UnaryMinus, lexer.Minus},
		{UnaryPlus, lexer.Plus},
		{LogicalNot, lexer.LogicalNot},
		{BitwiseNot, lexer.BitwiseNot},
	}
	for _, u := range unaries {
		g.Define(Unary).WithRule(u.tag).NeverHoist().Once()
		g.Define(u.tag).
			WithToken(u.op).Exclude().Once().
			ThenRule(Unary).Once()
	}
	g.Define(Unary).WithRule(Primary).Once()

	g.Define(Primary).WithToken(lexer.Number, lexer.String, lexer.Identifier).Once()
	g.Define(Primary).WithRule(Group).Hoist().Once()
	g.Define(Primary).WithRule(Floor).NeverHoist().Once()
	g.Define(Group).
		WithToken(lexer.LeftParenthesis).Exclude().Once().
		ThenRule(Expression).NeverHoist().Once().
		ThenToken(lexer.RightParenthesis).Exclude().Once()
	g.Define(Floor).
		WithToken(lexer.LeftSquareBracket).Exclude().Once().
		ThenRule(Expression).Once().
		ThenToken(lexer.RightSquareBracket).Exclude().Once()
}
