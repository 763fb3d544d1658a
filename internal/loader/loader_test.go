package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flc-lang/flc/internal/builtins"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/lexer"
	"github.com/flc-lang/flc/internal/loader"
	"github.com/flc-lang/flc/internal/parser"
	"github.com/flc-lang/flc/internal/runtime"
)

// newProgram wires a fresh GlobalContext with the full builtin library
// and a Loader rooted at dir, the way cmd/flc's run command does.
func newProgram(t *testing.T, dir string, include []string) (*runtime.GlobalContext, *interp.Interpreter) {
	t.Helper()
	g := runtime.NewGlobalContext(0)
	in := interp.New(g)
	ld := loader.New(in, g, dir, include)
	builtins.Register(g, in, builtins.Options{Importer: ld})
	return g, in
}

func execute(t *testing.T, g *runtime.GlobalContext, in *interp.Interpreter, src string) runtime.Data {
	t.Helper()
	words, lexErrs := lexer.New("test", src).Words()
	if len(lexErrs) != 0 {
		t.Fatalf("lex(%q): %v", src, lexErrs)
	}
	p := parser.New(words)
	expr, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse(%q) accumulated errors: %v", src, errs)
	}
	ref, err := in.Execute(g, expr)
	if err != nil {
		t.Fatalf("execute(%q): %v", src, err)
	}
	d, err := ref.Read()
	if err != nil {
		t.Fatalf("read(%q): %v", src, err)
	}
	return d
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestImportDefinesSymbolsInGlobalScope(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.fl", `double := (x) |-> x * 2;`)

	g, in := newProgram(t, dir, nil)
	d := execute(t, g, in, `import("math.fl"); double(21)`)
	if d.Kind != runtime.KindLong || d.Long != 42 {
		t.Fatalf("expected 42, got %v", d)
	}
}

func TestImportIsIdempotentOnRepeat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "counter.fl", `bumps := 0; bumps := bumps + 1;`)

	g, in := newProgram(t, dir, nil)
	d := execute(t, g, in, `import("counter.fl"); import("counter.fl"); bumps`)
	if d.Kind != runtime.KindLong || d.Long != 1 {
		t.Fatalf("expected the file to execute exactly once (bumps=1), got %v", d)
	}
}

func TestImportResolvesAgainstIncludePath(t *testing.T) {
	libDir := t.TempDir()
	progDir := t.TempDir()
	writeFile(t, libDir, "util.fl", `answer := 42;`)

	g, in := newProgram(t, progDir, []string{libDir})
	d := execute(t, g, in, `import("util.fl"); answer`)
	if d.Kind != runtime.KindLong || d.Long != 42 {
		t.Fatalf("expected 42 via include path, got %v", d)
	}
}

func TestImportMissingFileRaisesCatchableException(t *testing.T) {
	dir := t.TempDir()
	g, in := newProgram(t, dir, nil)
	d := execute(t, g, in, `try(import("does-not-exist.fl"), (e) |-> e)`)
	if d.Kind != runtime.KindObject || d.Object == nil {
		t.Fatalf("expected a caught exception value, got %v", d)
	}
}

func TestImportSelfCycleIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cyclic.fl", `loaded := 0; import("cyclic.fl"); loaded := loaded + 1;`)

	g, in := newProgram(t, dir, nil)
	d := execute(t, g, in, `import("cyclic.fl"); loaded`)
	if d.Kind != runtime.KindLong || d.Long != 1 {
		t.Fatalf("expected the self-import to be a no-op (loaded=1), got %v", d)
	}
}
