package builtins

import (
	"fmt"
	"io"

	"github.com/flc-lang/flc/internal/runtime"
)

// registerIO wires `print`/`println` to out — the minimal host-I/O hook
// §6's "host object slot" describes without naming a concrete built-in.
// File/stream wrappers stay out of scope; a nil out silently discards
// output rather than erroring, so tests that never configure a writer
// still run.
func registerIO(g *runtime.GlobalContext, out io.Writer) {
	write := func(d runtime.Data, newline bool) {
		dest := out
		if d.Defined && d.Kind == runtime.KindObject && d.Object != nil {
			if w, ok := d.Object.Host.(io.Writer); ok {
				dest = w
			}
		}
		if dest == nil {
			return
		}
		text := d.String()
		if d.Defined && d.Kind == runtime.KindObject && d.Object != nil {
			if s, ok := d.Object.GoString(); ok {
				text = s
			}
		}
		if newline {
			fmt.Fprintln(dest, text)
		} else {
			fmt.Fprint(dest, text)
		}
	}

	system(g, "print", symAt("value"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "value")
		if err != nil {
			return nil, err
		}
		write(d, false)
		return runtime.NewDirectReference(d), nil
	})
	system(g, "println", symAt("value"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "value")
		if err != nil {
			return nil, err
		}
		write(d, true)
		return runtime.NewDirectReference(d), nil
	})
}
