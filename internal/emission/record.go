// Package emission converts logged activity records into CO2-equivalent
// values using an emission factor table.
//
// Everything here is a pure function over its inputs: no I/O, no shared
// state, safe to call concurrently. Results carry exact unrounded values;
// rounding is a presentation concern and summing unrounded values keeps
// aggregates free of accumulated drift.
package emission

import (
	"fmt"
	"math"
	"time"

	"github.com/mfleet/ecotally/internal/factor"
)

// ActivityRecord is one logged user action. Records are immutable once
// created; an edit is a new record with a new ID so historical totals stay
// auditable.
type ActivityRecord struct {
	// ID uniquely identifies the record. Caller-assigned; the ingest layer
	// generates one for records that arrive without.
	ID string `json:"id"`

	Category factor.Category `json:"category"`

	// Subtype keys into the emission factor table (e.g. "car_gasoline").
	Subtype string `json:"subtype"`

	// Quantity is the activity amount in the unit implied by the subtype:
	// km for transport, kWh or m3 for energy, item count otherwise.
	Quantity float64 `json:"quantity"`

	// Timestamp is the instant the activity occurred.
	Timestamp time.Time `json:"timestamp"`

	// Notes is optional free text; it never participates in calculation.
	Notes string `json:"notes,omitempty"`
}

// Validate checks the record against the given factor table. The quantity
// must be finite and non-negative, the subtype must resolve to a factor, and
// the category must be a known one matching that factor.
func (r ActivityRecord) Validate(table *factor.Table) error {
	if math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) {
		return fmt.Errorf("%w: quantity must be finite, got %v (record %s)", ErrInvalidQuantity, r.Quantity, r.ID)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative, got %v (record %s)", ErrInvalidQuantity, r.Quantity, r.ID)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q (record %s)", ErrInvalidCategory, r.Category, r.ID)
	}
	f, err := table.Lookup(r.Subtype)
	if err != nil {
		return fmt.Errorf("record %s: %w", r.ID, err)
	}
	if r.Category != f.Category {
		return fmt.Errorf("%w: category %q contradicts subtype %q (%s, record %s)",
			ErrInvalidCategory, r.Category, r.Subtype, f.Category, r.ID)
	}
	return nil
}

// EmissionResult is the computed CO2 equivalent of one activity record.
// Ephemeral: recomputed on demand, never persisted by this layer.
type EmissionResult struct {
	ActivityID string `json:"activity_id"`

	// Category is the factor table's category for the record's subtype, the
	// authoritative grouping key for per-category breakdowns.
	Category factor.Category `json:"category"`

	// CO2Kg is the exact unrounded CO2-equivalent mass in kilograms.
	CO2Kg float64 `json:"co2_kg"`
}
