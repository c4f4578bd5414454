// Package apiary generates working API clients from declarative contracts.
//
// A contract names a Go interface, the remote calls behind its methods and
// the environments (base URLs) a client may target. Given a contract and an
// environment name, apiary produces an instance implementing the interface:
//
//	a, err := apiary.New("generated", apiary.WithResolver(deps))
//	if err != nil {
//		return err
//	}
//	client, err := apiary.Generate[nasa.NASA](a, c, "local")
//	if err != nil {
//		return err
//	}
//	img, err := client.Apod(ctx, nil, nil, nil, "DEMO_KEY")
//
// # Pipeline
//
// [Apiary.GenerateClient] runs these stages in order and stops at the
// first failure:
//
//   - validate: [contract.Contract.Validate]
//   - resolve: [contract.ResolveEnvironment] selects the environment root
//   - render: the generator package synthesizes Go source
//   - materialize: the compiler package writes the source under the output
//     root, never replacing an existing file, and type-checks it
//   - load: the loader package constructs the linked unit with dependencies
//     from an [inject.Resolver]
//
// A failure is returned as an [apiaryerrors.GenerationFailure] naming the
// contract and stage; errors.Is and errors.As reach the stage error.
//
// # Linking
//
// Go programs cannot load new code while running. A generated package
// registers its client from init, so it must be linked into the program,
// typically by running the apiary command from go:generate and
// blank-importing the generated package. Runs at run time then verify that
// the source they produce compiles against the program's module and
// construct the linked unit.
//
// # Subpackages
//
//   - contract: contract model, YAML parsing, validation, environments
//   - generator: source synthesis from an embedded template
//   - compiler: no-overwrite writes and go/types checking
//   - loader: unit lookup and construction
//   - apiclient: runtime used by generated clients
//   - inject: the dependency container
//   - apiaryerrors: typed errors for every stage
package apiary
