package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ava12/pseudo"
	"github.com/ava12/pseudo/eval"
)

func (a *app) colorMode() string {
	if a.cfg == nil {
		return "auto"
	}
	return a.cfg.Color
}

// report prints error header and, for positioned errors, the offending source line with a caret.
func (a *app) report(w io.Writer, err error) {
	st := newStyles(w, a.colorMode())
	pe := pseudo.AsError(err)
	if pe == nil {
		fmt.Fprintln(w, st.errorHeader.Render("error:"), err.Error())
		return
	}

	header := fmt.Sprintf("%s error %d:", pe.ClassName(), pe.Code)
	fmt.Fprintln(w, st.errorHeader.Render(header), st.message.Render(pe.Message))

	src := a.sources[pe.SourceName]
	if src == nil || pe.Line <= 0 || pe.Line > src.Lines() {
		return
	}

	line := src.Line(pe.Line)
	gutter := fmt.Sprintf("%4d | ", pe.Line)
	fmt.Fprintln(w, st.gutter.Render(gutter)+line)
	fmt.Fprintln(w, strings.Repeat(" ", len(gutter))+caretPrefix(line, pe.Col)+st.caret.Render("^"))
}

// caretPrefix returns padding placing a caret under 1-based column col, tabs are kept to preserve alignment.
func caretPrefix(line string, col int) string {
	sb := &strings.Builder{}
	i := 1
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
		i++
	}
	for ; i < col; i++ {
		sb.WriteRune(' ')
	}
	return sb.String()
}

// variablesTable renders variables sorted by name.
func variablesTable(st *styles, env eval.Environment) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.gutter).
		Headers("NAME", "TYPE", "VALUE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header.Padding(0, 1)
			case col == 0:
				return st.name.Padding(0, 1)
			default:
				return st.cell
			}
		})

	for _, name := range env.Names() {
		v := env[name]
		t.Row(name, v.Kind().String(), v.Quoted())
	}
	return t.String()
}
