package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mfleet/ecotally/internal/logging"
)

// Classification is the performance tier of a period total relative to a
// baseline average.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type Classification int

// Tiers, ordered best to worst.
const (
	ClassExcellent Classification = iota
	ClassGood
	ClassAverage
	ClassPoor
	ClassCritical
)

// Ratio thresholds between tiers. Lower bounds are inclusive in the worse
// tier: a ratio of exactly 0.5 classifies as Good, not Excellent.
const (
	ThresholdGood     = 0.5
	ThresholdAverage  = 0.8
	ThresholdPoor     = 1.2
	ThresholdCritical = 1.6
)

// String returns the human-readable label for a Classification.
func (c Classification) String() string {
	switch c {
	case ClassExcellent:
		return "excellent"
	case ClassGood:
		return "good"
	case ClassAverage:
		return "average"
	case ClassPoor:
		return "poor"
	case ClassCritical:
		return "critical"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// MarshalJSON implements json.Marshaler to output Classification as string.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler to parse Classification from string.
func (c *Classification) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("parsing classification: %w", err)
	}
	switch str {
	case "excellent":
		*c = ClassExcellent
	case "good":
		*c = ClassGood
	case "average":
		*c = ClassAverage
	case "poor":
		*c = ClassPoor
	case "critical":
		*c = ClassCritical
	default:
		return fmt.Errorf("unknown classification: %q", str)
	}
	return nil
}

// Baseline is the fixed reference a period total is compared against:
// the national average and the treaty target ceiling, both for the same
// period granularity as the aggregate.
type Baseline struct {
	// AverageKg is the reference average total for the period, in kg CO2e.
	AverageKg float64 `yaml:"average_kg" json:"average_kg"`
	// TargetKg is the treaty target ceiling for the period, in kg CO2e.
	TargetKg float64 `yaml:"target_kg" json:"target_kg"`
}

// Validate checks that the baseline can support classification.
func (b Baseline) Validate() error {
	if b.AverageKg <= 0 {
		return fmt.Errorf("%w: average must be positive, got %v", ErrInvalidBaseline, b.AverageKg)
	}
	if b.TargetKg < 0 {
		return fmt.Errorf("%w: target must be non-negative, got %v", ErrInvalidBaseline, b.TargetKg)
	}
	return nil
}

// Scale returns the baseline multiplied by the mean day count of g, turning
// a per-day baseline into the matching per-period one.
func (b Baseline) Scale(g Granularity) Baseline {
	days := g.DaysIn()
	return Baseline{AverageKg: b.AverageKg * days, TargetKg: b.TargetKg * days}
}

// Classify compares an aggregate total against a baseline of matching
// granularity and returns the performance tier.
//
// ratio = total / baseline average; tier bounds are inclusive on the worse
// side (see Threshold constants). Classification is monotonic: a larger
// total never yields a better tier. Returns ErrInvalidBaseline when the
// baseline average is not positive.
func Classify(ctx context.Context, agg PeriodAggregate, baseline Baseline) (Classification, error) {
	if err := baseline.Validate(); err != nil {
		return ClassCritical, err
	}

	ratio := agg.TotalCO2Kg / baseline.AverageKg

	var class Classification
	switch {
	case ratio >= ThresholdCritical:
		class = ClassCritical
	case ratio >= ThresholdPoor:
		class = ClassPoor
	case ratio >= ThresholdAverage:
		class = ClassAverage
	case ratio >= ThresholdGood:
		class = ClassGood
	default:
		class = ClassExcellent
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("operation", "classify").
		Float64("total_co2_kg", agg.TotalCO2Kg).
		Float64("baseline_avg_kg", baseline.AverageKg).
		Float64("ratio", ratio).
		Str("classification", class.String()).
		Msg("classified period")

	return class, nil
}

// Ratio returns total divided by the baseline average, the raw value behind
// a classification. Returns ErrInvalidBaseline when the average is not
// positive.
func Ratio(agg PeriodAggregate, baseline Baseline) (float64, error) {
	if err := baseline.Validate(); err != nil {
		return 0, err
	}
	return agg.TotalCO2Kg / baseline.AverageKg, nil
}
