// Package compiler persists rendered client source and verifies that it
// compiles.
//
// A [Pipeline] materializes an [Artifact] in two steps. The write step
// places the source under a [Layout] root, creating parent directories and
// refusing to replace an existing file. The compile step parses the written
// package, loads every package it imports from the ambient Go module with
// golang.org/x/tools/go/packages, and type-checks it with go/types.
//
// Every message the compile step produces, including soft errors such as
// unused imports, is collected as an [apiaryerrors.Diagnostic]. Any
// diagnostic fails the step with an [apiaryerrors.CompilationError]:
//
//	p, err := compiler.NewPipeline(compiler.Layout{Root: "generated"})
//	if err != nil {
//		return err
//	}
//	compiled, err := p.Materialize(p.Artifact(pkg, class, src))
//	var ce *apiaryerrors.CompilationError
//	if errors.As(err, &ce) {
//		for _, d := range ce.Diagnostics {
//			fmt.Println(d)
//		}
//	}
//
// The pipeline makes a single attempt. A file written before a failed
// compile is left in place, so materializing the same target again fails
// at the write step until the file is removed.
package compiler
