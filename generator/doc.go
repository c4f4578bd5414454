// Package generator renders the Go source of client implementations from
// API contracts.
//
// A rendered file declares one type that embeds *apiclient.Base, asserts
// that it implements the contract interface, and implements every call of
// the contract as a method building a request against a fixed environment
// root. The file's init function registers a constructor with
// apiclient.DefaultRegistry under the type's fully-qualified name.
//
//	g, err := generator.New()
//	if err != nil {
//		return err
//	}
//	env, err := contract.ResolveEnvironment(c, "local")
//	if err != nil {
//		return err
//	}
//	src, err := g.Render(c, c.TargetPackage(), c.TargetClass(), env)
//
// Render performs no I/O apart from what golang.org/x/tools/imports needs
// to resolve an import the contract references but does not declare.
//
// # Parameters
//
// Wire keys are derived from parameter names with the contract's
// ParamFormat. Optional parameters become pointers (unless their type
// already admits nil) and are only sent when non-nil. A nil value for a
// required pointer parameter fails when the request is built.
//
// # Templates
//
// The built-in template lives in templates/client.go.tmpl. WithTemplate
// replaces it; the replacement receives a *ClientFileData.
package generator
