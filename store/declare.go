package store

import (
	"errors"

	"ctor-binder/binder"
)

// Constructors lists every constructor of the package in declaration order.
func Constructors() []any {
	return []any{
		NewProduct,
		NewUserProduct,
		NewOrder,
		NewDatedOrder,
		NewOrderOf,
		NewOrderID,
		NewUser,
		NewAnnotatedUser,
		NewInferredUser,
	}
}

// Declare files the package constructors in c without annotations.
func Declare(c *binder.Catalog) error {
	var errs []error
	for _, fn := range Constructors() {
		errs = append(errs, c.Declare(fn))
	}

	return errors.Join(errs...)
}

// DeclareAnnotated files the package constructors in c and marks the binding
// constructors of AnnotatedUser and InferredUser.
func DeclareAnnotated(c *binder.Catalog) error {
	return errors.Join(
		Declare(c),
		c.Annotate(NewAnnotatedUser, binder.Names("first-name", "last-name")),
		c.Annotate(NewInferredUser, binder.InferNames()),
	)
}
