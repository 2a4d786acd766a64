// Package engine converts documents to Go values and back by dispatching on
// type to registered adapters.
//
// An Engine starts with adapters for scalars, time.Time, slices, pointers and
// structs. Adapters registered later take priority, so a binder.Adapter for
// *store.Order replaces the generic pointer handling for that exact type.
// Root nodes are matched to types through aliases:
//
//	e := engine.New()
//	e.Alias("order", reflect.TypeFor[*store.Order]())
//	_ = binder.Install(e, binder.ForType[*store.Order]()...)
//	v, err := e.FromXML("<order><id>666</id></order>")
package engine
