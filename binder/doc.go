// Package binder builds document adapters for immutable types that can only
// be created through a constructor function.
//
// A Resolver decides which constructor of a target type to call and which
// document node feeds each of its parameters. The result is a Plan: an
// ordered list of node names aligned with the constructor parameters. The
// plan is wrapped by an Adapter that walks the children of a document node,
// converts every bound child into the declared parameter type and invokes the
// constructor.
//
// Three strategies produce a plan:
//
//   - explicit: ForType[T]().WithConstructor(types...).WithNames(names...)
//   - declarative: a constructor annotated in a Catalog with Names(...)
//   - inferred: a constructor annotated with InferNames(), whose parameter
//     names are read from Go source by a NameInferrer
//
// Go has no constructor overloads or parameter metadata, so constructors are
// plain factory functions filed in a Catalog:
//
//	c := binder.NewCatalog()
//	_ = c.Declare(store.NewOrder)
//	_ = c.Declare(store.NewAnnotatedUser, binder.Names("first-name", "last-name"))
//
//	adapter, err := binder.ForType[*store.Order](binder.UsingCatalog(c)).
//		WithConstructor(reflect.TypeFor[string](), ...).
//		WithNames("id", "products", "date", "buyer").
//		Build()
//
// Adapters only read. Writing is delegated to an optional Marshaller.
package binder
