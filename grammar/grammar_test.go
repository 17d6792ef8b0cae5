package grammar

import (
	"strings"
	"testing"

	"github.com/ava12/pseudo/internal/test"
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/tree"
)

const (
	tList tree.Tag = iota + 1
	tItem
	tPair
	tValue
	tGroup
)

var testNames = map[tree.Tag]string{
	tList:  "List",
	tItem:  "Item",
	tPair:  "Pair",
	tValue: "Value",
	tGroup: "Group",
}

func testGrammar() *Grammar {
	g := New(testNames)
	g.Define(tList).
		WithRule(tItem).ZeroOrMore().
		ThenToken(lexer.EndOfLine).Exclude().Once().
		ThenToken(lexer.EndOfFile).Exclude().Once()
	g.Define(tItem).WithRule(tPair).Once()
	g.Define(tItem).WithRule(tGroup).NeverHoist().Once()
	g.Define(tItem).WithRule(tValue).Once()
	g.Define(tPair).
		WithToken(lexer.Identifier).Once().
		ThenToken(lexer.Assign).Exclude().Once().
		ThenRule(tValue).Once()
	g.Define(tValue).WithToken(lexer.Number, lexer.String).Once()
	g.Define(tGroup).
		WithToken(lexer.LeftParenthesis).Exclude().Once().
		ThenRule(tItem).Hoist().AtLeastOnce().
		ThenToken(lexer.RightParenthesis).Exclude().Once()
	return g
}

func tokens(src string) []*lexer.Token {
	return lexer.TokenizeString(src, nil)
}

func TestParse(t *testing.T) {
	samples := []struct {
		src, tree string
	}{
		{"x = 1", "(List (Pair x 1))"},
		{"1 2 'a'", `(List 1 2 "a")`},
		{"(1 2) 3", "(List (Group 1 2) 3)"},
		{"(1)", "(List (Group 1))"},
		{"((1) x = 2)", "(List (Group (Group 1) (Pair x 2)))"},
	}

	g := testGrammar()
	for i, s := range samples {
		root, e := g.Parse(tList, tokens(s.src))
		if e != nil {
			t.Errorf("sample #%d: unexpected error: %s", i, e)
			continue
		}
		got := tree.Dump(root)
		if got != s.tree {
			t.Errorf("sample #%d: expecting %s, got %s", i, s.tree, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	samples := []struct {
		src  string
		code int
	}{
		{"", NoMatchError},
		{")", NoMatchError},
		{"x = ", ExpectedRuleError},
		{"x 1", ExpectedTokenError},
		{"(1 2", ExpectedTokenError},
		{"1 )", ExpectedTokenError},
	}

	g := testGrammar()
	for i, s := range samples {
		_, e := g.Parse(tList, tokens(s.src))
		if e == nil {
			t.Errorf("sample #%d: expecting error %d, got success", i, s.code)
			continue
		}
		test.ExpectErrorCode(t, s.code, e)
	}
}

func TestParseErrorDetails(t *testing.T) {
	_, e := testGrammar().Parse(tList, tokens("x 1"))
	pe, valid := e.(*ParseError)
	test.Assert(t, valid, "expecting *ParseError, got %T", e)
	test.ExpectInt(t, int(tPair), int(pe.Rule))
	test.ExpectString(t, "Pair", pe.RuleName)
	test.Expect(t, pe.Expected == lexer.Kinds(lexer.Assign), lexer.Kinds(lexer.Assign), pe.Expected)
	test.Expect(t, pe.Token.Kind() == lexer.Number, lexer.Number, pe.Token.Kind())
	test.ExpectInt(t, 1, pe.Token.Line())
	test.ExpectInt(t, 3, pe.Token.Col())
	test.Assert(t, strings.Contains(pe.Error(), "expected ASSIGN"), "unexpected message %q", pe.Error())
	test.Assert(t, strings.Contains(pe.Error(), "line 1 col 3"), "unexpected message %q", pe.Error())

	_, e = testGrammar().Parse(tList, tokens("x ="))
	pe = e.(*ParseError)
	test.Expect(t, len(pe.ExpectedRules) == 1 && pe.ExpectedRules[0] == "Value", "[Value]", pe.ExpectedRules)
	test.Expect(t, pe.Token.Kind() == lexer.EndOfLine, lexer.EndOfLine, pe.Token.Kind())
}

func TestSoftStart(t *testing.T) {
	g := testGrammar()
	pair := g.Alternatives(tPair)[0]

	res, e := pair.Evaluate(tokens("1 = 2"), 0)
	test.ExpectNoError(t, e)
	test.Assert(t, !res.Matched, "rule must not match")

	res, e = pair.Evaluate(tokens("x = 2"), 0)
	test.ExpectNoError(t, e)
	test.Assert(t, res.Matched, "rule must match")
	test.ExpectInt(t, 3, res.Consumed)
	test.ExpectString(t, "(Pair x 2)", tree.Dump(res.Node))

	res, e = pair.Evaluate(tokens("1 x = 2"), 1)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 3, res.Consumed)

	res, e = pair.Evaluate(tokens("x"), 5)
	test.ExpectNoError(t, e)
	test.Assert(t, !res.Matched, "rule must not match beyond the end")
}

func TestSameTagHoisting(t *testing.T) {
	g := New(testNames)
	g.Define(tList).WithToken(lexer.Number).Once().ThenRule(tList).AtMostOnce()

	res, e := g.Evaluate(tList, tokens("1 2 3"), 0)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 3, res.Consumed)
	test.ExpectString(t, "(List 1 2 3)", tree.Dump(res.Node))
}

func TestAlternatives(t *testing.T) {
	g := New(testNames)
	g.Define(tItem).WithToken(lexer.Identifier).Once().ThenToken(lexer.Number).Once()
	g.Define(tItem).WithToken(lexer.Identifier).Once().ThenToken(lexer.String).Once()
	g.Define(tValue).WithToken(lexer.Identifier).Once()

	res, e := g.Evaluate(tItem, tokens("x 'a'"), 0)
	test.ExpectNoError(t, e)
	test.ExpectString(t, `(Item x "a")`, tree.Dump(res.Node))

	_, e = g.Evaluate(tItem, tokens("x y"), 0)
	pe, valid := e.(*ParseError)
	test.Assert(t, valid, "expecting *ParseError, got %v", e)
	test.Expect(t, pe.Expected == lexer.Kinds(lexer.String), lexer.Kinds(lexer.String), pe.Expected)

	res, e = g.Evaluate(tValue, tokens("x y"), 0)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 1, res.Consumed)

	alts := g.Alternatives(tValue, tItem)
	test.ExpectInt(t, 3, len(alts))
	test.Assert(t, alts[0].Tag() == tItem && alts[2].Tag() == tValue, "alternatives must keep declaration order")
}

func TestDeferredFailure(t *testing.T) {
	g := New(testNames)
	g.Define(tItem).WithToken(lexer.Identifier).Once().ThenToken(lexer.Number).Once()
	g.Define(tItem).WithToken(lexer.Number).Once()

	_, e := g.Evaluate(tItem, tokens("x y"), 0)
	test.ExpectErrorCode(t, ExpectedTokenError, e)

	res, e := g.Evaluate(tItem, tokens("5"), 0)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 1, res.Consumed)
}

func TestFirstCommittedFailure(t *testing.T) {
	g := New(testNames)
	g.Define(tList).WithRule(tPair, tGroup, tValue).Once()
	g.Define(tPair).WithToken(lexer.Identifier).Once().ThenToken(lexer.Assign).Once().ThenToken(lexer.Number).Once()
	g.Define(tGroup).WithToken(lexer.Identifier).Once().ThenToken(lexer.Number).Once()
	g.Define(tValue).WithToken(lexer.String).Once().ThenToken(lexer.Number).Once()

	_, e := g.Evaluate(tList, tokens("x y"), 0)
	pe, valid := e.(*ParseError)
	test.Assert(t, valid, "expecting *ParseError, got %v", e)
	test.ExpectString(t, "Pair", pe.RuleName)
	test.Expect(t, pe.Expected == lexer.Kinds(lexer.Assign), lexer.Kinds(lexer.Assign), pe.Expected)
	test.ExpectString(t, "y", pe.Token.Text())

	_, e = g.Evaluate(tList, tokens("'a' y"), 0)
	pe, valid = e.(*ParseError)
	test.Assert(t, valid, "expecting *ParseError, got %v", e)
	test.ExpectString(t, "Value", pe.RuleName)
	test.Expect(t, pe.Expected == lexer.Kinds(lexer.Number), lexer.Kinds(lexer.Number), pe.Expected)

	res, e := g.Evaluate(tList, tokens("x 5"), 0)
	test.ExpectNoError(t, e)
	test.ExpectString(t, "(List (Group x 5))", tree.Dump(res.Node))
}

func TestRootErrors(t *testing.T) {
	g := New(testNames)
	g.Define(tItem).WithToken(lexer.Number).Once()
	g.Define(tList).WithToken(lexer.EndOfLine, lexer.EndOfFile).Exclude().AtLeastOnce()

	_, e := g.Parse(tItem, tokens("1"))
	test.ExpectErrorCode(t, TrailingTokenError, e)

	_, e = g.Parse(tList, tokens(""))
	test.ExpectErrorCode(t, EmptyMatchError, e)

	_, e = g.Parse(tList, nil)
	test.ExpectErrorCode(t, NoMatchError, e)
}

func TestIdempotence(t *testing.T) {
	g := testGrammar()
	ts := tokens("(1 x = 'a') 2 (3 (4))")
	first, e := g.Parse(tList, ts)
	test.ExpectNoError(t, e)
	second, e := g.Parse(tList, ts)
	test.ExpectNoError(t, e)
	test.Assert(t, first != second, "expecting distinct trees")
	test.Assert(t, tree.Equal(first, second), "expecting equal trees: %s vs %s", tree.Dump(first), tree.Dump(second))
}

func TestDefinitionOrder(t *testing.T) {
	expectPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expecting panic", name)
			}
		}()
		f()
	}

	expectPanic("Then first", func() {
		New(testNames).Define(tItem).ThenToken(lexer.Number).Once()
	})
	expectPanic("With in the middle", func() {
		New(testNames).Define(tItem).WithToken(lexer.Number).Once().WithRule(tValue).Once()
	})
}

func TestString(t *testing.T) {
	expected := "List = {Item}, -END_OF_LINE, -END_OF_FILE;\n" +
		"Item = Pair;\n" +
		"Item = !Group;\n" +
		"Item = Value;\n" +
		"Pair = IDENTIFIER, -ASSIGN, Value;\n" +
		"Value = (NUMBER | STRING);\n" +
		"Group = -LEFT_PARENTHESIS, {^Item}+, -RIGHT_PARENTHESIS;\n"
	test.ExpectString(t, expected, testGrammar().String())
}
