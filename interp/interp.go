// Package interp runs pseudocode programs: tokenizes, parses and evaluates source text in one call.
package interp

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ava12/pseudo/eval"
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/parser"
	"github.com/ava12/pseudo/source"
	"github.com/ava12/pseudo/tree"
)

// Options configure a single run. Zero value runs English programs without time limit.
type Options struct {
	// Keywords defaults to English table.
	Keywords lexer.KeywordTable
	// Timeout limits evaluation time, non-positive means no limit.
	Timeout time.Duration
	// Output receives program output as it is produced.
	Output io.Writer
	// Logger receives pipeline stage messages, nil discards them.
	Logger *slog.Logger
	// Variables are assigned before the program starts.
	Variables eval.Environment
}

// Result describes a finished or failed run.
type Result struct {
	RunID     string
	Output    string
	Variables eval.Environment
	Tokens    []*lexer.Token
	Tree      *tree.NonTermNode
	Elapsed   time.Duration
}

var sharedParser = sync.OnceValue(parser.New)

// Parser returns the parser shared by all runs.
func Parser() *parser.Parser {
	return sharedParser()
}

// Run executes src. Result is never nil, on failure it contains everything produced before the error.
func Run(ctx context.Context, src *source.Source, opts Options) (*Result, error) {
	started := time.Now()
	res := &Result{RunID: uuid.NewString()}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run_id", res.RunID, "source", src.Name())

	kt := opts.Keywords
	if kt == nil {
		kt = lexer.English()
	}

	res.Tokens = lexer.Tokenize(src, kt)
	logger.Debug("tokenized", "tokens", len(res.Tokens), "lines", src.Lines())

	root, e := Parser().Parse(res.Tokens)
	if e != nil {
		res.Elapsed = time.Since(started)
		logger.Info("parse failed", "error", e)
		return res, e
	}
	res.Tree = root
	logger.Debug("parsed", "statements", root.Len(), "nodes", tree.NumOfChildren(root, tree.AllLevels))

	evalOpts := []eval.Option{
		eval.WithTimeout(opts.Timeout),
		eval.WithLogger(logger),
		eval.WithVariables(opts.Variables),
	}
	if opts.Output != nil {
		evalOpts = append(evalOpts, eval.WithOutput(opts.Output))
	}

	res.Output, res.Variables, e = eval.Evaluate(ctx, root, evalOpts...)
	res.Elapsed = time.Since(started)
	if e != nil {
		logger.Info("evaluation failed", "error", e, "elapsed", res.Elapsed)
		return res, e
	}

	logger.Info("run finished", "elapsed", res.Elapsed, "variables", len(res.Variables))
	return res, nil
}

// RunString executes text as an unnamed source.
func RunString(ctx context.Context, text string, opts Options) (*Result, error) {
	return Run(ctx, source.New("", text), opts)
}
