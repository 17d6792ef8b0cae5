package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ava12/pseudo/eval"
	"github.com/ava12/pseudo/internal/test"
	"github.com/ava12/pseudo/langdef"
)

type result struct {
	code           int
	stdout, stderr string
}

// workspace creates temporary directory with colorless config file, returns directory path.
func workspace(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("PSEUDO_CONFIG", filepath.Join(dir, "pseudo.toml"))
	writeFile(t, dir, "pseudo.toml", "color = \"never\"\ntimeout = \"2s\"\n")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write %s: %s", path, err)
	}
	return path
}

func execute(stdin string, args ...string) result {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(context.Background(), args, strings.NewReader(stdin), stdout, stderr)
	return result{code, stdout.String(), stderr.String()}
}

func expectContains(t *testing.T, text string, parts ...string) {
	for _, p := range parts {
		test.Assert(t, strings.Contains(text, p), "expecting %q in %q", p, text)
	}
}

func TestRun(t *testing.T) {
	dir := workspace(t)
	path := writeFile(t, dir, "calc.psc", "write 1+2*3\n")

	r := execute("", "run", path)
	test.ExpectInt(t, 0, r.code)
	test.ExpectString(t, "\n7\n", r.stdout)
	test.ExpectString(t, "", r.stderr)

	r = execute("x=3\nwhile x>0 do\n    write x\n    x=x-1\n", "run", "-")
	test.ExpectInt(t, 0, r.code)
	test.ExpectString(t, "\n3\n2\n1\n", r.stdout)

	r = execute("", "run", writeFile(t, dir, "empty.psc", "x = 1"))
	test.ExpectInt(t, 0, r.code)
	test.ExpectString(t, "", r.stdout)
}

func TestRunVariables(t *testing.T) {
	dir := workspace(t)
	path := writeFile(t, dir, "vars.psc", "x = 2\nname = 'done'\n")

	r := execute("", "run", "--vars", path)
	test.ExpectInt(t, 0, r.code)
	expectContains(t, r.stdout, "NAME", "TYPE", "VALUE", "x", "NUMBER", "name", "STRING", `"done"`)
	test.Assert(t, strings.Index(r.stdout, "name") < strings.Index(r.stdout, "x "), "variables are not sorted: %s", r.stdout)
}

func TestRunErrors(t *testing.T) {
	dir := workspace(t)

	r := execute("", "run", writeFile(t, dir, "type.psc", "write 1\nwrite 1-'a'\n"))
	test.ExpectInt(t, 1, r.code)
	test.ExpectString(t, "\n1\n\n", r.stdout)
	expectContains(t, r.stderr, fmt.Sprintf("evaluation error %d:", eval.TypeMismatchError), "   2 | write 1-'a'", "^")

	r = execute("", "run", writeFile(t, dir, "syntax.psc", "x = (1 +\n"))
	test.ExpectInt(t, 1, r.code)
	expectContains(t, r.stderr, "syntax error", "syntax.psc", "   1 | x = (1 +")

	r = execute("", "run", "--timeout", "50ms", writeFile(t, dir, "loop.psc", "while 1==1 do\n    x=1\n"))
	test.ExpectInt(t, 1, r.code)
	expectContains(t, r.stderr, fmt.Sprintf("evaluation error %d:", eval.TimeLimitError))

	r = execute("", "run", filepath.Join(dir, "missing.psc"))
	test.ExpectInt(t, 1, r.code)
	expectContains(t, r.stderr, "error:", "missing.psc")

	r = execute("", "run")
	test.ExpectInt(t, 1, r.code)
}

func TestLanguages(t *testing.T) {
	dir := workspace(t)
	path := writeFile(t, dir, "ro.psc", "pentru i=0,2 executa\n    scrie i\n")

	r := execute("", "--lang", "romanian", "run", path)
	test.ExpectInt(t, 0, r.code)
	test.ExpectString(t, "\n0\n1\n", r.stdout)

	langFile := writeFile(t, dir, "short.yaml", "name: short\nkeywords:\n  write: print\n")
	r = execute("print 5", "--lang-file", langFile, "run", "-")
	test.ExpectInt(t, 0, r.code)
	test.ExpectString(t, "\n5\n", r.stdout)

	r = execute("", "--lang", "klingon", "langs")
	test.ExpectInt(t, 1, r.code)
	expectContains(t, r.stderr, fmt.Sprintf("language error %d:", langdef.UnknownLanguageError))

	r = execute("", "--lang", "romanian", "langs")
	test.ExpectInt(t, 0, r.code)
	expectContains(t, r.stdout, "  english", "* romanian", "cat timp")
}

func TestInspect(t *testing.T) {
	dir := workspace(t)
	path := writeFile(t, dir, "x.psc", "x = 1\nwrite x\n")

	r := execute("", "tokens", path)
	test.ExpectInt(t, 0, r.code)
	expectContains(t, r.stdout, "IDENTIFIER", `"x"`, "ASSIGN", "END_OF_FILE", "   2:1")

	r = execute("", "tree", path)
	test.ExpectInt(t, 0, r.code)
	expectContains(t, r.stdout, "Program @1-2", "  Assignment @1", "  Print @2")

	r = execute("", "grammar")
	test.ExpectInt(t, 0, r.code)
	expectContains(t, r.stdout, "Program = {Statement}, -END_OF_FILE;\n")

	r = execute("", "version")
	test.ExpectInt(t, 0, r.code)
	expectContains(t, r.stdout, "pseudo v"+Version)
}

func TestCaretPrefix(t *testing.T) {
	test.ExpectString(t, "", caretPrefix("abc", 1))
	test.ExpectString(t, "  ", caretPrefix("abc", 3))
	test.ExpectString(t, "\t  ", caretPrefix("\tabc", 4))
	test.ExpectString(t, "     ", caretPrefix("ab", 6))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.buf.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.buf.String()
}

func waitFor(t *testing.T, sb *syncBuffer, part string) {
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(sb.String(), part) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q, got %q", part, sb.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatch(t *testing.T) {
	dir := workspace(t)
	path := writeFile(t, dir, "w.psc", "write 'first'\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stdout := &syncBuffer{}
	stderr := &syncBuffer{}
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"run", "--watch", path}, strings.NewReader(""), stdout, stderr)
	}()

	waitFor(t, stdout, "\nfirst\n")
	writeFile(t, dir, "w.psc", "write 'second'\n")
	waitFor(t, stdout, "\nsecond\n")
	writeFile(t, dir, "w.psc", "write 1-'a'\n")
	waitFor(t, stderr, "evaluation error")

	cancel()
	select {
	case code := <-done:
		test.ExpectInt(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	expectContains(t, stdout.String(), "w.psc")
}
