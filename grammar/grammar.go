// Package grammar is a declarative rule-combinator engine used to describe and parse
// token streams into syntax trees.
//
// A grammar is a list of rules. Each rule has a tag, several rules may share the same tag,
// in this case they are ordered alternatives tried in declaration order.
// A rule is a fixed pipeline of steps defined with a fluent builder:
//
//	g.Define(Sum).
//		WithRule(Subtract).Once().
//		ThenRule(SubsequentSum).Hoist().ZeroOrMore()
//
// Token steps match one token of given kinds, rule steps match any rule carrying one of given tags.
// Every step ends with a quantifier: Once, AtMostOnce, AtLeastOnce, or ZeroOrMore.
//
// A rule commits as soon as one of its steps matches something. A required step failing
// before commitment means "the rule is not applicable here", the same failure after
// commitment is a *ParseError.
//
// Matched sub-rule nodes are inserted into parent node either as is or hoisted,
// i.e. replaced by their children. Hoisting is forced by Hoist(), prohibited by NeverHoist(),
// otherwise a node is hoisted if it has the same tag as its parent or has exactly one child.
// Excluded tokens and empty nodes are never inserted.
//
// Rules are immutable after definition, evaluation keeps its state in per-call structures,
// so a grammar may be used concurrently.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/tree"
)

// Quantifier defines how many times a step may match.
type Quantifier int

const (
	Once Quantifier = iota
	AtMostOnce
	AtLeastOnce
	ZeroOrMore
)

func (q Quantifier) min() int {
	if q == Once || q == AtLeastOnce {
		return 1
	}
	return 0
}

func (q Quantifier) repeats() bool {
	return q == AtLeastOnce || q == ZeroOrMore
}

type step struct {
	leading    bool
	isRule     bool
	tokens     lexer.KindSet
	tags       []tree.Tag
	quantifier Quantifier
	exclude    bool
	hoist      bool
	neverHoist bool
}

// Grammar is a set of rules.
type Grammar struct {
	names map[tree.Tag]string
	rules []*Rule
	byTag map[tree.Tag][]*Rule
}

// New creates empty grammar, names map rule tags to names used in syntax tree and error messages.
func New(names map[tree.Tag]string) *Grammar {
	return &Grammar{names: names, byTag: make(map[tree.Tag][]*Rule)}
}

// Name returns rule tag name.
func (g *Grammar) Name(tag tree.Tag) string {
	name, found := g.names[tag]
	if !found {
		return fmt.Sprintf("rule#%d", tag)
	}
	return name
}

// Define appends a new rule with given tag, the rule must be defined with builder methods.
func (g *Grammar) Define(tag tree.Tag) *Rule {
	r := &Rule{grammar: g, tag: tag, index: len(g.rules)}
	g.rules = append(g.rules, r)
	g.byTag[tag] = append(g.byTag[tag], r)
	return r
}

// Rules returns all rules in declaration order.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Alternatives returns rules carrying any of given tags in declaration order.
func (g *Grammar) Alternatives(tags ...tree.Tag) []*Rule {
	if len(tags) == 1 {
		return g.byTag[tags[0]]
	}

	var res []*Rule
	for _, tag := range tags {
		res = append(res, g.byTag[tag]...)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].index < res[j].index
	})
	return res
}

// Evaluate tries all rules carrying given tag at start position.
func (g *Grammar) Evaluate(tag tree.Tag, tokens []*lexer.Token, start int) (Result, error) {
	return choose(g.Alternatives(tag), tokens, start)
}

// Parse evaluates root rule and requires it to consume all tokens and produce non-empty node.
func (g *Grammar) Parse(root tree.Tag, tokens []*lexer.Token) (*tree.NonTermNode, error) {
	if len(tokens) == 0 {
		return nil, emptyInputError(g.Name(root))
	}

	res, e := g.Evaluate(root, tokens, 0)
	if e != nil {
		return nil, e
	}

	if !res.Matched {
		return nil, noMatchError(g.Name(root), tokens[0])
	}
	if res.Consumed < len(tokens) {
		return nil, trailingTokenError(g.Name(root), tokens[res.Consumed])
	}
	if res.Node.Len() == 0 {
		return nil, emptyMatchError(g.Name(root), tokens[0])
	}
	return res.Node, nil
}

func (g *Grammar) String() string {
	sb := &strings.Builder{}
	for _, r := range g.rules {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rule is a pipeline of matching steps producing a node tagged with rule tag.
type Rule struct {
	grammar *Grammar
	tag     tree.Tag
	index   int
	steps   []step
}

func (r *Rule) Tag() tree.Tag {
	return r.tag
}

func (r *Rule) Name() string {
	return r.grammar.Name(r.tag)
}

// String returns EBNF-like rule description.
// Excluded tokens are prefixed with "-", hoisted rules with "^", never hoisted rules with "!".
func (r *Rule) String() string {
	parts := make([]string, len(r.steps))
	for i, st := range r.steps {
		parts[i] = r.describeStep(&st)
	}
	return r.Name() + " = " + strings.Join(parts, ", ") + ";"
}

func (r *Rule) describeStep(st *step) string {
	var items []string
	prefix := ""
	if st.isRule {
		for _, tag := range st.tags {
			items = append(items, r.grammar.Name(tag))
		}
		if st.hoist {
			prefix = "^"
		} else if st.neverHoist {
			prefix = "!"
		}
	} else {
		for _, k := range st.tokens.Kinds() {
			items = append(items, k.String())
		}
		if st.exclude {
			prefix = "-"
		}
	}

	res := prefix + strings.Join(items, " | ")
	if len(items) > 1 {
		res = prefix + "(" + strings.Join(items, " | ") + ")"
	}

	switch st.quantifier {
	case AtMostOnce:
		return "[" + res + "]"
	case AtLeastOnce:
		return "{" + res + "}+"
	case ZeroOrMore:
		return "{" + res + "}"
	default:
		return res
	}
}

// WithToken starts a rule with a token step.
func (r *Rule) WithToken(kinds ...lexer.Kind) *TokenStep {
	return &TokenStep{r.pending(true, step{tokens: lexer.Kinds(kinds...)})}
}

// ThenToken continues a rule with a token step.
func (r *Rule) ThenToken(kinds ...lexer.Kind) *TokenStep {
	return &TokenStep{r.pending(false, step{tokens: lexer.Kinds(kinds...)})}
}

// WithRule starts a rule with a sub-rule step.
func (r *Rule) WithRule(tags ...tree.Tag) *RuleStep {
	return &RuleStep{r.pending(true, step{isRule: true, tags: tags})}
}

// ThenRule continues a rule with a sub-rule step.
func (r *Rule) ThenRule(tags ...tree.Tag) *RuleStep {
	return &RuleStep{r.pending(false, step{isRule: true, tags: tags})}
}

func (r *Rule) pending(leading bool, st step) pending {
	if leading != (len(r.steps) == 0) {
		if leading {
			panic(fmt.Sprintf("grammar: With* used in the middle of rule %s", r.Name()))
		}
		panic(fmt.Sprintf("grammar: rule %s must start with With*", r.Name()))
	}

	st.leading = leading
	return pending{r, st}
}

type pending struct {
	rule *Rule
	step step
}

func (p *pending) add(q Quantifier) *Rule {
	p.step.quantifier = q
	p.rule.steps = append(p.rule.steps, p.step)
	return p.rule
}

// Once requires exactly one match.
func (p *pending) Once() *Rule {
	return p.add(Once)
}

// AtMostOnce allows zero or one match.
func (p *pending) AtMostOnce() *Rule {
	return p.add(AtMostOnce)
}

// AtLeastOnce requires one or more matches.
func (p *pending) AtLeastOnce() *Rule {
	return p.add(AtLeastOnce)
}

// ZeroOrMore allows any number of matches.
func (p *pending) ZeroOrMore() *Rule {
	return p.add(ZeroOrMore)
}

// TokenStep is a token step being defined, must be finished with a quantifier.
type TokenStep struct {
	pending
}

// Exclude makes matched tokens consumed but not added to syntax tree.
func (ts *TokenStep) Exclude() *TokenStep {
	ts.step.exclude = true
	return ts
}

// RuleStep is a sub-rule step being defined, must be finished with a quantifier.
type RuleStep struct {
	pending
}

// Hoist forces replacing matched node with its children.
func (rs *RuleStep) Hoist() *RuleStep {
	rs.step.hoist = true
	rs.step.neverHoist = false
	return rs
}

// NeverHoist forces inserting matched node as is.
func (rs *RuleStep) NeverHoist() *RuleStep {
	rs.step.neverHoist = true
	rs.step.hoist = false
	return rs
}
