// Package equiv converts abstract CO2e totals into relatable real-world
// equivalencies (car kilometres, smartphone charges, tree-months of
// absorption) for report feedback.
package equiv

import (
	"fmt"
	"math"
)

// Equivalency factors, kg CO2e per unit of the named activity.
// To compute an equivalency, divide the carbon total by the factor.
const (
	// CarKmFactor is kg CO2e per km for an average gasoline passenger car,
	// matching the built-in car_gasoline emission factor.
	CarKmFactor = 0.21

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge, based on
	// average battery capacity and grid intensity.
	SmartphoneChargeFactor = 0.00822

	// TreeMonthFactor is kg CO2e absorbed by one urban tree in a month,
	// derived from ~60 kg sequestered over a ten-year growth period.
	TreeMonthFactor = 0.5
)

// MinEquivalencyThresholdKg is the minimum total for showing equivalencies.
// Below this the equivalents are meaninglessly small.
const MinEquivalencyThresholdKg = 0.1

// Type identifies an equivalency category.
type Type int

// Equivalency categories.
const (
	// TypeCarKm converts CO2e to kilometres driven in a gasoline car.
	TypeCarKm Type = iota
	// TypeSmartphoneCharges converts CO2e to smartphone full charges.
	TypeSmartphoneCharges
	// TypeTreeMonths converts CO2e to tree-months of absorption.
	TypeTreeMonths
)

// String returns a human-readable representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeCarKm:
		return "CarKm"
	case TypeSmartphoneCharges:
		return "SmartphoneCharges"
	case TypeTreeMonths:
		return "TreeMonths"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Result is a single calculated equivalency.
type Result struct {
	Type Type `json:"type"`
	// Value is the raw calculated equivalency value.
	Value float64 `json:"value"`
	// FormattedValue is the display-ready string with separators/scaling.
	FormattedValue string `json:"formatted_value"`
	// Label is the descriptive phrase (e.g. "km by car").
	Label string `json:"label"`
}

// Output contains all equivalency results for display.
type Output struct {
	// InputKg is the CO2e total the equivalencies describe.
	InputKg float64 `json:"input_kg"`
	// Results contains the equivalencies in display order.
	Results []Result `json:"results"`
	// DisplayText is the prose line for CLI output.
	DisplayText string `json:"display_text"`
	// IsEmpty is true when the input was below the display threshold.
	IsEmpty bool `json:"is_empty"`
}

// Calculate computes the equivalencies for a CO2e total in kilograms.
//
// Totals below MinEquivalencyThresholdKg return an empty Output with no
// error. Negative or non-finite totals return ErrInvalidInput.
func Calculate(kg float64) (Output, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Output{IsEmpty: true}, ErrInvalidInput
	}
	if kg < 0 {
		return Output{IsEmpty: true}, ErrInvalidInput
	}
	if kg < MinEquivalencyThresholdKg {
		return Output{InputKg: kg, IsEmpty: true}, nil
	}

	carKm := kg / CarKmFactor
	charges := kg / SmartphoneChargeFactor
	treeMonths := kg / TreeMonthFactor

	results := []Result{
		{Type: TypeCarKm, Value: carKm, FormattedValue: FormatValue(carKm), Label: "km by gasoline car"},
		{Type: TypeSmartphoneCharges, Value: charges, FormattedValue: FormatValue(charges), Label: "smartphone charges"},
		{Type: TypeTreeMonths, Value: treeMonths, FormattedValue: FormatValue(treeMonths), Label: "tree-months to absorb"},
	}

	displayText := fmt.Sprintf("Equivalent to driving ~%s km or charging ~%s smartphones; ~%s tree-months to absorb",
		results[0].FormattedValue, results[1].FormattedValue, results[2].FormattedValue)

	return Output{
		InputKg:     kg,
		Results:     results,
		DisplayText: displayText,
		IsEmpty:     false,
	}, nil
}
