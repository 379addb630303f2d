package engine

import (
	"iter"
	"slices"

	"github.com/mfleet/ecotally/internal/factor"
)

// Tip is one actionable suggestion for reducing emissions in a category,
// tagged with a rough estimate of what following it saves per week.
type Tip struct {
	Category factor.Category `json:"category"`
	Title    string          `json:"title"`
	Detail   string          `json:"detail"`
	// EstSavingsKg is the estimated saving in kg CO2e per week.
	EstSavingsKg float64 `json:"est_savings_kg"`
}

// Static tip tables keyed by category. Within a category, tips are stored in
// rank order; emission order is descending estimated savings with the stored
// rank as the stable tie-break.
var tipTable = map[factor.Category][]Tip{ //nolint:gochecknoglobals // Constant lookup data
	factor.CategoryTransport: {
		{Category: factor.CategoryTransport, Title: "Switch short car trips to cycling",
			Detail: "Trips under 5 km account for a large share of urban driving; cycling them is emission-free.", EstSavingsKg: 8.4},
		{Category: factor.CategoryTransport, Title: "Take the train instead of driving",
			Detail: "Rail emits roughly a fifth of a gasoline car per passenger-kilometre.", EstSavingsKg: 6.8},
		{Category: factor.CategoryTransport, Title: "Carpool on your commute",
			Detail: "Sharing a ride halves the per-person emissions of the trip.", EstSavingsKg: 5.3},
		{Category: factor.CategoryTransport, Title: "Avoid one short-haul flight",
			Detail: "A single domestic flight can outweigh a month of commuting.", EstSavingsKg: 4.0},
	},
	factor.CategoryEnergy: {
		{Category: factor.CategoryEnergy, Title: "Lower heating by one degree",
			Detail: "Each degree less cuts heating energy by around six percent.", EstSavingsKg: 5.5},
		{Category: factor.CategoryEnergy, Title: "Switch to a green electricity tariff",
			Detail: "Certified renewable tariffs cut the grid factor to near zero.", EstSavingsKg: 4.9},
		{Category: factor.CategoryEnergy, Title: "Run appliances on full loads",
			Detail: "Dishwashers and washing machines emit per cycle, not per item.", EstSavingsKg: 1.6},
	},
	factor.CategoryFood: {
		{Category: factor.CategoryFood, Title: "Replace two beef meals with vegetarian",
			Detail: "Beef carries the highest factor of any meal; two swaps a week add up.", EstSavingsKg: 11.6},
		{Category: factor.CategoryFood, Title: "Cut food waste",
			Detail: "A third of household food ends up unused; plan portions before shopping.", EstSavingsKg: 2.4},
		{Category: factor.CategoryFood, Title: "Buy seasonal produce",
			Detail: "Greenhouse and air-freight produce can carry several times the field factor.", EstSavingsKg: 1.2},
	},
	factor.CategoryShopping: {
		{Category: factor.CategoryShopping, Title: "Buy second-hand first",
			Detail: "A used garment or device carries no new manufacturing emissions.", EstSavingsKg: 3.8},
		{Category: factor.CategoryShopping, Title: "Repair before replacing",
			Detail: "Most of an item's footprint is in its manufacture, not its use.", EstSavingsKg: 2.9},
		{Category: factor.CategoryShopping, Title: "Skip express shipping",
			Detail: "Consolidated standard delivery needs fewer trips per parcel.", EstSavingsKg: 0.7},
	},
}

// Tips returns the tips for the aggregate's dominant category as a lazy,
// finite, restartable sequence: ranging over it twice with the same
// aggregate yields the identical ordering.
func Tips(agg PeriodAggregate) iter.Seq[Tip] {
	category := agg.DominantCategory()
	return func(yield func(Tip) bool) {
		for _, tip := range rankedTips(category) {
			if !yield(tip) {
				return
			}
		}
	}
}

// TipList materializes Tips into a slice for JSON output and table
// rendering.
func TipList(agg PeriodAggregate) []Tip {
	return slices.Collect(Tips(agg))
}

// rankedTips returns a category's tips ordered by descending estimated
// savings, preserving table order between equal estimates.
func rankedTips(category factor.Category) []Tip {
	tips := slices.Clone(tipTable[category])
	slices.SortStableFunc(tips, func(a, b Tip) int {
		switch {
		case a.EstSavingsKg > b.EstSavingsKg:
			return -1
		case a.EstSavingsKg < b.EstSavingsKg:
			return 1
		default:
			return 0
		}
	})
	return tips
}
