package tree_test

import (
	"fmt"
	"os"

	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/tree"
)

func ExampleFprint() {
	tok := func(kind lexer.Kind, text string, col int) *lexer.Token {
		return lexer.NewToken(kind, text, nil, 1, col)
	}

	x := tok(lexer.Identifier, "x", 1)
	sum := tree.NewNonTermNode(2, "Sum", x)
	sum.AppendChildren(tree.NewTokenNode(x), tree.NewTokenNode(tok(lexer.String, "s", 5)))
	root := tree.NewNonTermNode(1, "Print", x)
	root.AppendChild(sum)

	fmt.Println(tree.Dump(root))
	_ = tree.Fprint(os.Stdout, root)
	// Output:
	// (Print (Sum x "s"))
	// Print @1
	//   Sum @1
	//     IDENTIFIER "x"
	//     STRING "s"
}
