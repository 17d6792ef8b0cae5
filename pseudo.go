/*
Package pseudo is an interpreter for a small indentation-sensitive pseudocode language
used for teaching programming.

Consists of subpackages:
  - source: named source text with line index;
  - lexer: tokenizer and indentation layout pass, keyword tables;
  - tree: syntax tree types and traversal functions;
  - grammar: declarative rule-combinator engine used to describe the language;
  - parser: rule tags and the language grammar, parse driver;
  - eval: tree-walking evaluator with execution time budget;
  - langdef: built-in and file-defined keyword languages;
  - interp: complete source-to-output pipeline;
  - cmd/pseudo: console utility running and inspecting programs.

Typical usage is:

	src := source.New("hello.psc", "x = 3\nwhile x > 0 do\n    write x\n    x = x - 1\n")
	res, e := interp.Run(ctx, src, interp.Options{Timeout: time.Second})

All errors returned by subpackages are either *Error or wrap *Error.
*/
package pseudo

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	SyntaxErrors     = 201 // used by grammar and parser
	EvaluationErrors = 301 // used by eval
	LanguageErrors   = 401 // used by langdef
	ConfigErrors     = 501 // used by configuration loaders
)

var classNames = map[int]string{
	SyntaxErrors:     "syntax",
	EvaluationErrors: "evaluation",
	LanguageErrors:   "language",
	ConfigErrors:     "config",
}

// Error is the error type used by pseudo subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// lexer.Token and syntax tree nodes implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// Position (and name, if not empty) will be added to error message if line is non-zero.
func NewError(code int, msg, name string, line, col int) *Error {
	switch {
	case line == 0:
	case name != "":
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	default:
		msg += fmt.Sprintf(" at line %d col %d", line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns the first code of error class, e.g. SyntaxErrors.
func (e *Error) Class() int {
	return (e.Code-1)/100*100 + 1
}

// ClassName returns human-readable error category: "syntax", "evaluation", etc.
func (e *Error) ClassName() string {
	name, found := classNames[e.Class()]
	if !found {
		return "unknown"
	}
	return name
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// AsError extracts *Error from error chain, returns nil if there is none.
func AsError(e error) *Error {
	var pe *Error
	if errors.As(e, &pe) {
		return pe
	}
	return nil
}
