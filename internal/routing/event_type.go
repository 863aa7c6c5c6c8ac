package routing

import (
	"reflect"
	"strings"
)

// EventType identifies a message type in the routing table.
type EventType string

// EventTypeOf returns the identifier of the Go type T: its package path and
// name, e.g. "github.com/acme/sales/events.OrderPlaced". Pointer types resolve
// to their element type so that T and *T share one route.
func EventTypeOf[T any]() EventType {
	return eventTypeFor(reflect.TypeFor[T]())
}

func eventTypeFor(t reflect.Type) EventType {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return EventType(t.String())
	}
	if t.PkgPath() == "" {
		return EventType(t.Name())
	}
	return EventType(t.PkgPath() + "." + t.Name())
}

// Short returns the last dotted segment of the identifier, which is the
// bare type name for identifiers produced by EventTypeOf.
func (t EventType) Short() string {
	s := string(t)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
