package eval

import (
	"time"

	"github.com/ava12/pseudo"
	"github.com/ava12/pseudo/tree"
)

// Error codes used by evaluator:
const (
	// TypeMismatchError indicates an operand or a condition of wrong type.
	TypeMismatchError = pseudo.EvaluationErrors + iota
	// UndeclaredError indicates a reference to unassigned variable.
	UndeclaredError
	// ArityError indicates a node with unexpected number of children.
	ArityError
	// InvalidNodeError indicates a node that cannot be evaluated in its position.
	InvalidNodeError
	// NotImplementedError indicates a reserved statement, i.e. read.
	NotImplementedError
	// TimeLimitError indicates exhausted execution budget.
	TimeLimitError
	// CanceledError indicates canceled context.
	CanceledError
	// InvalidNumberError indicates a numeric literal that cannot be converted.
	InvalidNumberError
	// OutputError indicates a failure writing to output mirror.
	OutputError
)

func typeMismatchError(n tree.Node, expected, got ValueKind) *pseudo.Error {
	return pseudo.FormatErrorPos(n, TypeMismatchError, "type mismatch in %s: expected %s, got %s", n.TypeName(), expected, got)
}

func undeclaredError(n tree.Node, name string) *pseudo.Error {
	return pseudo.FormatErrorPos(n, UndeclaredError, "undeclared identifier %q", name)
}

func arityError(n *tree.NonTermNode) *pseudo.Error {
	return pseudo.FormatErrorPos(n, ArityError, "wrong number of children in %s: %d", n.TypeName(), n.Len())
}

func invalidNodeError(n tree.Node, role string) *pseudo.Error {
	return pseudo.FormatErrorPos(n, InvalidNodeError, "%s cannot be evaluated as %s", n.TypeName(), role)
}

func notImplementedError(n tree.Node) *pseudo.Error {
	return pseudo.FormatErrorPos(n, NotImplementedError, "%s statement is not implemented", n.TypeName())
}

func timeLimitError(n tree.Node, limit time.Duration) *pseudo.Error {
	return pseudo.FormatErrorPos(n, TimeLimitError, "time limit of %s exceeded in %s", limit, n.TypeName())
}

func canceledError(n tree.Node, cause error) *pseudo.Error {
	return pseudo.FormatErrorPos(n, CanceledError, "evaluation canceled in %s: %s", n.TypeName(), cause)
}

func invalidNumberError(n tree.Node, text string) *pseudo.Error {
	return pseudo.FormatErrorPos(n, InvalidNumberError, "invalid number %q", text)
}

func outputError(cause error) *pseudo.Error {
	return pseudo.FormatError(OutputError, "cannot write output: %s", cause)
}

func deadlineError(n tree.Node) *pseudo.Error {
	return pseudo.FormatErrorPos(n, TimeLimitError, "deadline exceeded in %s", n.TypeName())
}
