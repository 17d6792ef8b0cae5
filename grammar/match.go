package grammar

import (
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/tree"
)

// Result describes rule evaluation outcome.
type Result struct {
	// Matched is false if the rule is not applicable at given position.
	Matched bool
	// Node is the resulting node (possibly empty) if Matched is true.
	Node *tree.NonTermNode
	// Consumed is the number of consumed tokens including excluded ones.
	Consumed int
}

type matcher struct {
	rule   *Rule
	tokens []*lexer.Token
	pos    int
	node   *tree.NonTermNode
}

// Evaluate matches the rule against tokens starting at start index.
// Returns non-matched result and nil error if the rule is not applicable,
// returns *ParseError if the rule has committed but cannot complete.
func (r *Rule) Evaluate(tokens []*lexer.Token, start int) (Result, error) {
	if start < 0 || start >= len(tokens) {
		return Result{}, nil
	}

	m := &matcher{
		rule:   r,
		tokens: tokens,
		pos:    start,
		node:   tree.NewNonTermNode(r.tag, r.Name(), tokens[start]),
	}
	committed := false
	for i := range r.steps {
		st := &r.steps[i]
		n, e := m.repeat(st)
		if e != nil {
			return Result{}, e
		}

		if n < st.quantifier.min() {
			if committed {
				return Result{}, m.expectationError(st)
			}
			return Result{}, nil
		}
		if n > 0 {
			committed = true
		}
	}

	return Result{Matched: true, Node: m.node, Consumed: m.pos - start}, nil
}

func (m *matcher) repeat(st *step) (int, error) {
	n := 0
	for {
		matched, e := m.matchOne(st)
		if e != nil || !matched {
			return n, e
		}

		n++
		if !st.quantifier.repeats() {
			return n, nil
		}
	}
}

func (m *matcher) matchOne(st *step) (bool, error) {
	if m.pos >= len(m.tokens) {
		return false, nil
	}

	if !st.isRule {
		tok := m.tokens[m.pos]
		if !st.tokens.Contains(tok.Kind()) {
			return false, nil
		}

		if !st.exclude {
			m.node.AppendChild(tree.NewTokenNode(tok))
		}
		m.pos++
		return true, nil
	}

	res, e := choose(m.rule.grammar.Alternatives(st.tags...), m.tokens, m.pos)
	if e != nil || !res.Matched {
		return false, e
	}

	m.insert(st, res.Node)
	m.pos += res.Consumed
	return true, nil
}

func (m *matcher) insert(st *step, child *tree.NonTermNode) {
	switch {
	case child.Len() == 0:
	case st.hoist, !st.neverHoist && (child.Tag() == m.rule.tag || child.Len() == 1):
		m.node.AppendChildren(child.Children()...)
	default:
		m.node.AppendChild(child)
	}
}

// choose returns the first alternative matching at least one token.
// A failure of non-last alternative is kept and returned only if no alternative matches.
func choose(alts []*Rule, tokens []*lexer.Token, start int) (Result, error) {
	var deferred error
	last := len(alts) - 1
	for i, alt := range alts {
		res, e := alt.Evaluate(tokens, start)
		if e != nil {
			if i == last {
				return Result{}, e
			}
			if deferred == nil {
				deferred = e
			}
			continue
		}

		if res.Matched && res.Consumed > 0 {
			return res, nil
		}
	}

	return Result{}, deferred
}

func (m *matcher) expectationError(st *step) error {
	tok := m.tokens[len(m.tokens)-1]
	if m.pos < len(m.tokens) {
		tok = m.tokens[m.pos]
	}

	pe := &ParseError{
		Rule:     m.rule.tag,
		RuleName: m.rule.Name(),
		Token:    tok,
	}
	if st.isRule {
		pe.ExpectedRules = make([]string, len(st.tags))
		for i, tag := range st.tags {
			pe.ExpectedRules[i] = m.rule.grammar.Name(tag)
		}
		pe.err = expectedRuleError(pe)
	} else {
		pe.Expected = st.tokens
		pe.err = expectedTokenError(pe)
	}
	return pe
}
