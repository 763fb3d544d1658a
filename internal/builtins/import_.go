package builtins

import (
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

// registerImport wires `import path`. Resolution, de-duplication, and
// parsing (once per file) all live in internal/loader, which implements
// Importer; this builtin is a thin
// adapter so the evaluator never imports the loader package directly
// (it would be a cycle: loader needs an Interpreter to execute what it
// loads).
func registerImport(g *runtime.GlobalContext, importer Importer) {
	system(g, "import", symAt("path"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		pathData, err := call1(fc, "path")
		if err != nil {
			return nil, err
		}
		if !pathData.Defined || pathData.Kind != runtime.KindObject || pathData.Object == nil {
			return nil, interp.ArgumentsError("import path must be a string")
		}
		path, ok := pathData.Object.GoString()
		if !ok {
			return nil, interp.ArgumentsError("import path must be a string")
		}
		if importer == nil {
			return nil, interp.ArgumentsError("import is not wired to a loader")
		}
		return importer.Import(path)
	})
}
