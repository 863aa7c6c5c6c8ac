// Package sales is a compiled-in route module declaring the events published
// by the Sales endpoint.
package sales

import "github.com/vk/busboot/internal/routing"

// OrderPlaced is published by the Sales endpoint when an order is accepted.
type OrderPlaced struct {
	OrderID string
}

// SomethingHappened is a generic event published by PublisherEndpoint.
type SomethingHappened struct {
	SomeProperty string
}

// Module implements the routing.Module interface for this package.
type Module struct{}

// RegisterRoutes declares the publishers of this package's events.
func (m *Module) RegisterRoutes(r *routing.Registry) error {
	if err := routing.RegisterPublisher[OrderPlaced](r, "Sales"); err != nil {
		return err
	}
	return routing.RegisterPublisher[SomethingHappened](r, "PublisherEndpoint")
}
