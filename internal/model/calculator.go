package model

import (
	"errors"
	"fmt"
)

// CalculatorKind discriminates the two shapes a calculator record can take.
type CalculatorKind string

const (
	// KindInputBased calculators are rendered from a list of numeric input fields.
	KindInputBased CalculatorKind = "input-based"

	// KindComponentBased calculators embed a dedicated widget (e.g. the unit converter).
	KindComponentBased CalculatorKind = "component-based"
)

// String returns the kind as written in catalog files.
func (k CalculatorKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds.
func (k CalculatorKind) Valid() bool {
	return k == KindInputBased || k == KindComponentBased
}

// Calculator validation errors.
var (
	// ErrUnknownKind is returned for a kind other than input-based or component-based.
	ErrUnknownKind = errors.New("unknown calculator kind")

	// ErrMissingInputs is returned when an input-based calculator declares no inputs.
	ErrMissingInputs = errors.New("input-based calculator has no inputs")

	// ErrMissingComponent is returned when a component-based calculator names no component.
	ErrMissingComponent = errors.New("component-based calculator has no component")

	// ErrMixedPayload is returned when a calculator carries the payload of both kinds.
	ErrMixedPayload = errors.New("calculator carries both inputs and a component")
)

// InputField describes one numeric form input of an input-based calculator.
type InputField struct {
	// Name is the key under which the value is submitted.
	Name string `json:"name" yaml:"name"`

	// Label is the Spanish label shown next to the field.
	Label string `json:"label" yaml:"label"`

	// Unit is an optional unit hint ("€", "%", "años").
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Default is the prefilled value, if any.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Calculator is a catalog entry for one calculator screen.
// It is keyed by ID in the catalog and in the /calculadora/{id} route.
type Calculator struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Category    string         `json:"category" yaml:"category"`
	Kind        CalculatorKind `json:"kind" yaml:"kind"`

	// Inputs is set for input-based calculators only.
	Inputs []InputField `json:"inputs,omitempty" yaml:"inputs,omitempty"`

	// Component is set for component-based calculators only.
	Component string `json:"component,omitempty" yaml:"component,omitempty"`

	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// IsInputBased reports whether the calculator is rendered from input fields.
func (c *Calculator) IsInputBased() bool {
	return c.Kind == KindInputBased
}

// IsComponentBased reports whether the calculator embeds a widget.
func (c *Calculator) IsComponentBased() bool {
	return c.Kind == KindComponentBased
}

// Validate checks that the payload matches the declared kind.
func (c *Calculator) Validate() error {
	switch c.Kind {
	case KindInputBased:
		if c.Component != "" {
			return fmt.Errorf("calculator %q: %w", c.ID, ErrMixedPayload)
		}
		if len(c.Inputs) == 0 {
			return fmt.Errorf("calculator %q: %w", c.ID, ErrMissingInputs)
		}
	case KindComponentBased:
		if len(c.Inputs) > 0 {
			return fmt.Errorf("calculator %q: %w", c.ID, ErrMixedPayload)
		}
		if c.Component == "" {
			return fmt.Errorf("calculator %q: %w", c.ID, ErrMissingComponent)
		}
	default:
		return fmt.Errorf("calculator %q: %w: %q", c.ID, ErrUnknownKind, c.Kind)
	}
	return nil
}
