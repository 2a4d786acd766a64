// Package store holds immutable domain types that can only be built through
// their constructors. It is used as a fixture by the binder and by the
// source-level parameter name resolver.
package store

import (
	"time"
)

// Product is an item of an order. It is either named or owned by a user.
type Product struct {
	name string
	user *User
}

func NewProduct(name string) *Product {
	return &Product{name: name}
}

func NewUserProduct(user *User) *Product {
	return &Product{user: user}
}

func (p *Product) Name() string { return p.name }
func (p *Product) User() *User  { return p.user }

// Order is a transaction made by a buyer.
type Order struct {
	id       string
	products []*Product
	date     time.Time
	buyer    string
}

func NewOrder(id string, products []*Product, date time.Time, buyer string) *Order {
	return &Order{id: id, products: products, date: date, buyer: buyer}
}

// NewDatedOrder builds an order that only carries its date.
func NewDatedOrder(date time.Time) *Order {
	return NewOrder("", nil, date, "")
}

func NewOrderOf(products []*Product) *Order {
	return NewOrder("", products, time.Time{}, "")
}

func NewOrderID(id string) *Order {
	return NewOrder(id, nil, time.Time{}, "")
}

func (o *Order) ID() string           { return o.id }
func (o *Order) Products() []*Product { return o.products }
func (o *Order) Date() time.Time      { return o.date }
func (o *Order) Buyer() string        { return o.buyer }

type User struct {
	name string
}

func NewUser(name string) *User {
	return &User{name: name}
}

func (u *User) Name() string { return u.name }

// AnnotatedUser is bound through explicit names on its constructor.
type AnnotatedUser struct {
	name string
}

func NewAnnotatedUser(firstName, lastName string) *AnnotatedUser {
	return &AnnotatedUser{name: firstName + " " + lastName}
}

func (u *AnnotatedUser) Name() string { return u.name }

// InferredUser is bound through the parameter names found in this file.
type InferredUser struct {
	name string
}

func NewInferredUser(strangeArgName string) *InferredUser {
	return &InferredUser{name: strangeArgName}
}

func (u *InferredUser) Name() string { return u.name }
