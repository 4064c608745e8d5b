package payapi

import (
	"encoding/json"
)

// Expandable references a related resource. By default it carries only the
// resource identifier; when the relation was requested via the expand[]
// parameter it also carries the hydrated record. It serializes as the bare
// identifier string unless expanded.
type Expandable[T any] struct {
	ID       string
	resource *T
}

// ExpandableID builds an unexpanded reference from an identifier.
func ExpandableID[T any](id string) *Expandable[T] {
	return &Expandable[T]{ID: id}
}

// Expanded reports whether the full resource is present.
func (e *Expandable[T]) Expanded() bool {
	return e != nil && e.resource != nil
}

// Resource returns the hydrated record, or nil when not expanded.
func (e *Expandable[T]) Resource() *T {
	if e == nil {
		return nil
	}
	return e.resource
}

// MarshalJSON emits the identifier string, or the full object when expanded.
func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if e.resource != nil {
		return json.Marshal(e.resource)
	}
	return json.Marshal(e.ID)
}

// UnmarshalJSON accepts either a JSON string identifier or a full resource
// object. For objects, the embedded id field becomes the reference ID.
func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.ID)
	}

	var resource T
	if err := json.Unmarshal(data, &resource); err != nil {
		return err
	}

	var ref struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &ref); err != nil {
		return err
	}

	e.ID = ref.ID
	e.resource = &resource
	return nil
}
