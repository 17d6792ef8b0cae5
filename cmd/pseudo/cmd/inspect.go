package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava12/pseudo/interp"
	"github.com/ava12/pseudo/langdef"
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/tree"
)

func (a *app) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print token stream",
		Long:  "Prints tokens produced by lexer after indentation layout, one per line: position, kind and text.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out, a.colorMode())
			for _, tok := range lexer.Tokenize(src, a.language.Keywords) {
				pos := st.gutter.Render(fmt.Sprintf("%4d:%-3d", tok.Line(), tok.Col()))
				kind := st.kind.Render(fmt.Sprintf("%-20s", tok.Kind()))
				if tok.Text() == "" {
					fmt.Fprintf(out, "%s %s\n", pos, kind)
				} else {
					fmt.Fprintf(out, "%s %s %q\n", pos, kind, tok.Text())
				}
			}
			return nil
		},
	}
}

func (a *app) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			root, err := interp.Parser().ParseSource(src, a.language.Keywords)
			if err != nil {
				return err
			}
			return tree.Fprint(cmd.OutOrStdout(), root)
		},
	}
}

func (a *app) grammarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Print language grammar",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), interp.Parser().Grammar().String())
		},
	}
}

func (a *app) langsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List built-in keyword languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := newStyles(out, a.colorMode())
			for _, name := range langdef.Names() {
				l, err := langdef.Builtin(name)
				if err != nil {
					return err
				}

				spellings := make([]string, len(l.Keywords))
				for i, kw := range l.Keywords {
					spellings[i] = kw.Spelling
				}
				marker := " "
				if name == a.language.Name {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s\n", marker, st.name.Render(fmt.Sprintf("%-10s", name)), st.muted.Render(strings.Join(spellings, ", ")))
			}
			return nil
		},
	}
}
