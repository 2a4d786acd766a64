package warehouse

import (
	"errors"

	"ctor-binder/binder"
)

// Declare files the package constructors in c. Both Shelf constructors are
// marked for name inference.
func Declare(c *binder.Catalog) error {
	return errors.Join(
		c.Declare(NewCrate),
		c.Declare(NewPallet),
		c.Declare(NewShelf, binder.InferNames()),
		c.Declare(NewShelfAt, binder.InferNames()),
		c.Declare(NewBin),
		c.Declare(NewBlankBin),
		c.Declare(NewRack),
		c.Declare(NewPair[int]),
	)
}
