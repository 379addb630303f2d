// Package factor provides the authoritative emission factor table: the static
// mapping from an activity subtype to its CO2e-per-unit factor.
//
// The table is fixed at construction and never mutated, which makes it safe
// for unsynchronized concurrent reads. Zero-emission subtypes (walking,
// cycling) carry a factor of 0.0 and are treated uniformly by the calculator,
// not special-cased.
package factor

import (
	"fmt"
	"math"
)

// Category groups activity subtypes for aggregation and tip selection.
type Category string

// Activity categories. The declaration order is also the fixed tie-break
// priority used when selecting a dominant category.
const (
	CategoryTransport Category = "transport"
	CategoryEnergy    Category = "energy"
	CategoryFood      Category = "food"
	CategoryShopping  Category = "shopping"
)

// Categories returns all categories in priority order.
func Categories() []Category {
	return []Category{CategoryTransport, CategoryEnergy, CategoryFood, CategoryShopping}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransport, CategoryEnergy, CategoryFood, CategoryShopping:
		return true
	default:
		return false
	}
}

// Unit is the physical unit an activity quantity is measured in. The unit is
// implied by the subtype: distance for transport, consumption for energy,
// item count for food and shopping.
type Unit string

// Recognized quantity units.
const (
	UnitKilometre    Unit = "km"
	UnitKilowattHour Unit = "kWh"
	UnitCubicMetre   Unit = "m3"
	UnitItem         Unit = "item"
)

// Valid reports whether u is a recognized unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitKilometre, UnitKilowattHour, UnitCubicMetre, UnitItem:
		return true
	default:
		return false
	}
}

// Factor is one row of the emission factor table: the kg CO2e emitted per
// unit of activity for a given subtype.
type Factor struct {
	Category Category `yaml:"category" json:"category"`
	Subtype  string   `yaml:"subtype"  json:"subtype"`
	// PerUnit is kg CO2e per Unit of activity. Non-negative; 0.0 marks a
	// zero-emission mode.
	PerUnit float64 `yaml:"per_unit" json:"per_unit"`
	Unit    Unit    `yaml:"unit"     json:"unit"`
}

// Validate checks a single factor row.
func (f Factor) Validate() error {
	if f.Subtype == "" {
		return fmt.Errorf("%w: empty subtype", ErrInvalidFactor)
	}
	if !f.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q for subtype %q", ErrInvalidFactor, f.Category, f.Subtype)
	}
	if !f.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q for subtype %q", ErrInvalidFactor, f.Unit, f.Subtype)
	}
	if f.PerUnit < 0 || math.IsNaN(f.PerUnit) || math.IsInf(f.PerUnit, 0) {
		return fmt.Errorf("%w: factor for subtype %q must be a finite non-negative number", ErrInvalidFactor, f.Subtype)
	}
	return nil
}
