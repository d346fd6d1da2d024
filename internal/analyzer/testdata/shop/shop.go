package shop

import (
	"context"
	"time"
)

// Entity carries the audit columns.
type Entity struct {
	CreatedAt time.Time
}

// Order is a customer order.
//
//syngen:name OrderDto
//syngen:attribute Table(orders, Schema = "sales")
type Order struct {
	Entity

	ID       int64
	Customer string
	Lines    []*Line
	Notes    *string `json:"notes,omitempty"`
	Tags     map[string]int
	Secret   string `json:"-"`
	internal bool
}

// Total sums the order lines.
func (o *Order) Total() float64 { return 0 }

func (o *Order) recalc() {}

type Line struct {
	Quantity int
	Price    float64
}

//syngen:skip
type Ignored struct {
	Name string
}

// Reader reads orders.
type Reader interface {
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

// Store persists orders.
type Store interface {
	Reader
	Save(ctx context.Context, o *Order) error
	Validate(o Order) error
}

type Status int

type unexported struct{}
