package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/ava12/pseudo/lexer"
)

// AllLevels tells NumOfChildren to count all descendants.
const AllLevels = -1

// NumOfChildren counts descendants up to given depth: 1 counts direct children only, AllLevels counts all.
func NumOfChildren(n Node, levels int) int {
	ntn, valid := n.(*NonTermNode)
	if !valid || ntn == nil || levels == 0 {
		return 0
	}

	res := len(ntn.children)
	if levels != 1 {
		for _, c := range ntn.children {
			res += NumOfChildren(c, levels-1)
		}
	}
	return res
}

// FirstTokenNode returns the first token node in subtree or nil.
func FirstTokenNode(n Node) *TokenNode {
	var res *TokenNode
	if n != nil {
		Walk(n, WalkLtr, func(ws WalkStat) WalkerFlags {
			if tn, valid := ws.Node.(*TokenNode); valid {
				res = tn
				return WalkerStop
			}
			return 0
		})
	}
	return res
}

// LastTokenNode returns the last token node in subtree or nil.
func LastTokenNode(n Node) *TokenNode {
	var res *TokenNode
	if n != nil {
		Walk(n, WalkRtl, func(ws WalkStat) WalkerFlags {
			if tn, valid := ws.Node.(*TokenNode); valid {
				res = tn
				return WalkerStop
			}
			return 0
		})
	}
	return res
}

// Equal reports whether two subtrees have the same shape, the same rule tags,
// and the same token kinds and texts. Token positions are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch an := a.(type) {
	case *TokenNode:
		bn, valid := b.(*TokenNode)
		return valid && an.Kind() == bn.Kind() && an.Text() == bn.Text()

	case *NonTermNode:
		bn, valid := b.(*NonTermNode)
		if !valid || an.tag != bn.tag || len(an.children) != len(bn.children) {
			return false
		}
		for i, c := range an.children {
			if !Equal(c, bn.children[i]) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// Dump returns compact S-expression form of a subtree, e.g. `(Sum 1 (Multiply 2 x) "s")`.
// Strings are quoted, other tokens are written as is, synthesized tokens are written as kind names.
func Dump(n Node) string {
	sb := &strings.Builder{}
	dump(sb, n)
	return sb.String()
}

func dump(sb *strings.Builder, n Node) {
	switch x := n.(type) {
	case *TokenNode:
		sb.WriteString(tokenText(x.token))
	case *NonTermNode:
		sb.WriteByte('(')
		sb.WriteString(x.typeName)
		for _, c := range x.children {
			sb.WriteByte(' ')
			dump(sb, c)
		}
		sb.WriteByte(')')
	}
}

func tokenText(t *lexer.Token) string {
	switch {
	case t.Kind() == lexer.String:
		return fmt.Sprintf("%q", t.Text())
	case t.Text() == "":
		return t.Kind().String()
	default:
		return t.Text()
	}
}

// lineSpan returns "@first" or "@first-last" for the source lines a subtree covers.
func lineSpan(n Node) string {
	first := n.Line()
	if first == 0 {
		if tn := FirstTokenNode(n); tn != nil {
			first = tn.Line()
		}
	}
	last := first
	if tn := LastTokenNode(n); tn != nil && tn.Line() > last {
		last = tn.Line()
	}
	if last == first {
		return fmt.Sprintf("@%d", first)
	}
	return fmt.Sprintf("@%d-%d", first, last)
}

// Fprint writes indented multi-line form of a subtree, one node per line:
// non-terminals as rule names with covered source lines, tokens as kind and quoted text.
func Fprint(w io.Writer, n Node) error {
	var e error
	indent := strings.Repeat("  ", 64)
	Walk(n, WalkLtr, func(ws WalkStat) WalkerFlags {
		pad := indent[:min(ws.Level*2, len(indent))]
		if ws.Node.IsNonTerm() {
			_, e = fmt.Fprintf(w, "%s%s %s\n", pad, ws.Node.TypeName(), lineSpan(ws.Node))
		} else {
			_, e = fmt.Fprintf(w, "%s%s %q\n", pad, ws.Node.TypeName(), ws.Node.Token().Text())
		}
		if e != nil {
			return WalkerStop
		}
		return 0
	})
	return e
}
