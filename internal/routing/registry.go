package routing

import (
	"iter"
	"strings"
	"sync"
)

// RouteEntry associates an event type with the endpoint that publishes it.
type RouteEntry struct {
	EventType EventType
	Publisher string
}

// Module is implemented by code that contributes publisher routes.
type Module interface {
	RegisterRoutes(r *Registry) error
}

// Registry is the event type to publisher table of a single endpoint.
// The zero value is not usable; create one with New.
type Registry struct {
	mu     sync.RWMutex
	routes map[EventType]string
	frozen bool
}

// New creates an empty registry in the building state.
func New() *Registry {
	return &Registry{
		routes: make(map[EventType]string),
	}
}

// Register records publisher as the owner of eventType. Registering the same
// pair again is a no-op. A different publisher for an already registered
// event type yields a *ConflictError and the original owner is kept.
func (r *Registry) Register(eventType EventType, publisher string) error {
	if strings.TrimSpace(string(eventType)) == "" {
		return &InvalidArgumentError{Field: "event type", Reason: "must not be empty"}
	}
	if strings.TrimSpace(publisher) == "" {
		return &InvalidArgumentError{Field: "publisher endpoint", Reason: "must not be blank"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return &FrozenRegistryError{EventType: eventType}
	}
	if existing, ok := r.routes[eventType]; ok {
		if existing == publisher {
			return nil
		}
		return &ConflictError{EventType: eventType, Existing: existing, Requested: publisher}
	}
	r.routes[eventType] = publisher
	return nil
}

// RegisterPublisher registers publisher as the owner of the Go type T.
func RegisterPublisher[T any](r *Registry, publisher string) error {
	return r.Register(EventTypeOf[T](), publisher)
}

// Lookup returns the publisher of eventType, or a *NotFoundError.
func (r *Registry) Lookup(eventType EventType) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	publisher, ok := r.routes[eventType]
	if !ok {
		return "", &NotFoundError{EventType: eventType}
	}
	return publisher, nil
}

// Freeze makes the registry read-only. It is idempotent and cannot be undone.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

// AllRoutes returns a sequence over every route. Each iteration takes a fresh
// snapshot, so the sequence can be ranged over any number of times. The order
// is unspecified.
func (r *Registry) AllRoutes() iter.Seq[RouteEntry] {
	return func(yield func(RouteEntry) bool) {
		r.mu.RLock()
		snapshot := make([]RouteEntry, 0, len(r.routes))
		for eventType, publisher := range r.routes {
			snapshot = append(snapshot, RouteEntry{EventType: eventType, Publisher: publisher})
		}
		r.mu.RUnlock()

		for _, entry := range snapshot {
			if !yield(entry) {
				return
			}
		}
	}
}
