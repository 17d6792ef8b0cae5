package interp

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ava12/pseudo"
	"github.com/ava12/pseudo/eval"
	"github.com/ava12/pseudo/grammar"
	"github.com/ava12/pseudo/internal/test"
	"github.com/ava12/pseudo/langdef"
	"github.com/ava12/pseudo/source"
)

func TestRun(t *testing.T) {
	mirror := &strings.Builder{}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := source.New("count.psc", "x=3\nwhile x>0 do\n    write x\n    x=x-1\n")
	res, e := Run(context.Background(), src, Options{Timeout: time.Second, Output: mirror, Logger: logger})
	test.ExpectNoError(t, e)
	test.ExpectString(t, "\n3\n2\n1", res.Output)
	test.ExpectString(t, res.Output, mirror.String())
	test.ExpectString(t, "0", res.Variables["x"].Text())
	test.Assert(t, res.Tree != nil, "syntax tree is missing")
	test.Assert(t, len(res.Tokens) > 0, "tokens are missing")

	_, e = uuid.Parse(res.RunID)
	test.ExpectNoError(t, e)
	test.Assert(t, strings.Contains(logs.String(), "run_id="+res.RunID), "run id is not logged: %s", logs.String())
	test.Assert(t, strings.Contains(logs.String(), "run finished"), "final stage is not logged: %s", logs.String())
	test.Assert(t, strings.Contains(logs.String(), "statements=2 nodes="), "tree size is not logged: %s", logs.String())
}

func TestRunIDs(t *testing.T) {
	a, _ := RunString(context.Background(), "write 1", Options{})
	b, _ := RunString(context.Background(), "write 1", Options{})
	test.Assert(t, a.RunID != b.RunID, "run ids must differ, got %s twice", a.RunID)
}

func TestLanguage(t *testing.T) {
	ro, e := langdef.Builtin("romanian")
	test.ExpectNoError(t, e)

	res, e := RunString(context.Background(), "pentru i=0,3 executa\n    scrie i\n", Options{Keywords: ro.Keywords})
	test.ExpectNoError(t, e)
	test.ExpectString(t, "\n0\n1\n2", res.Output)
}

func TestVariables(t *testing.T) {
	res, e := RunString(context.Background(), "write name + '!'", Options{Variables: eval.Environment{"name": eval.Text("hi")}})
	test.ExpectNoError(t, e)
	test.ExpectString(t, "\nhi!", res.Output)
}

func TestFailures(t *testing.T) {
	res, e := Run(context.Background(), source.New("bad.psc", "write 1\nwrite (2"), Options{})
	test.ExpectErrorClass(t, pseudo.SyntaxErrors, e)
	test.Assert(t, res.Tree == nil, "unexpected tree on syntax error")
	test.ExpectString(t, "", res.Output)
	pe := pseudo.AsError(e)
	test.ExpectString(t, "bad.psc", pe.SourceName)
	test.ExpectInt(t, 2, pe.Line)

	res, e = RunString(context.Background(), "write 1\nwrite 1-'a'\nwrite 3", Options{})
	test.ExpectErrorCode(t, eval.TypeMismatchError, e)
	test.ExpectString(t, "\n1\n", res.Output)

	res, e = RunString(context.Background(), "write 1\nwhile 1==1 do\n    x=1\n", Options{Timeout: 50 * time.Millisecond})
	test.ExpectErrorCode(t, eval.TimeLimitError, e)
	test.ExpectString(t, "\n1", res.Output)

	_, e = RunString(context.Background(), "", Options{})
	test.ExpectErrorCode(t, grammar.EmptyMatchError, e)
}
