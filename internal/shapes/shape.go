// Package shapes declares which attributes combine into each entity kind,
// and validates instances against that declaration.
package shapes

import (
	"fmt"

	"github.com/ledgertrace/ledgertrace/internal/attributes"
)

// Shape lists the attribute identifiers that compose an entity kind. A
// Shape does not own its attributes; many shapes may reference the same
// one.
type Shape struct {
	Name     string
	Required []string
	Optional []string
}

// Instance is a flat attribute-id -> value map, e.g. a Transaction
// flattened into its attribute fields.
type Instance map[string]any

// Error describes one failed attribute check against a shape.
type Error struct {
	Attribute string
	Reason    string
}

func (e Error) String() string {
	return fmt.Sprintf("%s: %s", e.Attribute, e.Reason)
}

// Validate checks instance against shape using registry for per-attribute
// rules. Every required attribute must be present and pass its own
// validation; optional attributes, when present, must pass; unrecognized
// attributes are never forbidden (the metadata map is explicitly open).
func Validate(shape Shape, instance Instance, registry *attributes.Registry) []Error {
	var errs []Error

	for _, id := range shape.Required {
		value, present := instance[id]
		if !present || value == nil || value == "" {
			errs = append(errs, Error{Attribute: id, Reason: "required attribute is missing"})
			continue
		}
		errs = append(errs, validateAttr(id, value, registry)...)
	}

	for _, id := range shape.Optional {
		value, present := instance[id]
		if !present {
			continue
		}
		errs = append(errs, validateAttr(id, value, registry)...)
	}

	return errs
}

func validateAttr(id string, value any, registry *attributes.Registry) []Error {
	def, ok := registry.Get(id)
	if !ok {
		return nil
	}
	var errs []Error
	for _, reason := range def.Validate(value) {
		errs = append(errs, Error{Attribute: id, Reason: reason})
	}
	return errs
}
