package routing

import "fmt"

// ConflictError is returned when an event type is already owned by a
// different publisher. The existing mapping is left untouched.
type ConflictError struct {
	EventType EventType
	Existing  string
	Requested string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("event type %q is already published by %q, cannot register %q", e.EventType, e.Existing, e.Requested)
}

// InvalidArgumentError is returned for malformed registration input.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned when no publisher is configured for an event type.
type NotFoundError struct {
	EventType EventType
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no publisher registered for event type %q", e.EventType)
}

// FrozenRegistryError is returned by Register once the registry is frozen.
type FrozenRegistryError struct {
	EventType EventType
}

func (e *FrozenRegistryError) Error() string {
	return fmt.Sprintf("routing registry is frozen, cannot register event type %q", e.EventType)
}
