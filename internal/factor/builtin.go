package factor

// Built-in emission factors (kg CO2e per unit).
//
// Transport values are per passenger-kilometre for an average occupancy
// vehicle; energy values assume an EU-average grid mix; food and shopping
// values are per item lifecycle estimates. Region-specific tables can replace
// these at startup via Load.
var builtinFactors = []Factor{ //nolint:gochecknoglobals // Constant lookup data
	// Transport, per km.
	{Category: CategoryTransport, Subtype: "car_gasoline", PerUnit: 0.21, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "car_diesel", PerUnit: 0.17, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "car_electric", PerUnit: 0.05, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "motorbike", PerUnit: 0.11, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "bus", PerUnit: 0.10, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "train", PerUnit: 0.04, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "plane_short_haul", PerUnit: 0.25, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "plane_long_haul", PerUnit: 0.19, Unit: UnitKilometre},
	// Zero-emission modes carry an explicit 0.0 factor, not a special case.
	{Category: CategoryTransport, Subtype: "walking", PerUnit: 0.0, Unit: UnitKilometre},
	{Category: CategoryTransport, Subtype: "cycling", PerUnit: 0.0, Unit: UnitKilometre},

	// Energy, per kWh or m3.
	{Category: CategoryEnergy, Subtype: "electricity", PerUnit: 0.35, Unit: UnitKilowattHour},
	{Category: CategoryEnergy, Subtype: "electricity_green", PerUnit: 0.03, Unit: UnitKilowattHour},
	{Category: CategoryEnergy, Subtype: "district_heating", PerUnit: 0.15, Unit: UnitKilowattHour},
	{Category: CategoryEnergy, Subtype: "natural_gas", PerUnit: 2.03, Unit: UnitCubicMetre},

	// Food, per serving/item.
	{Category: CategoryFood, Subtype: "meal_beef", PerUnit: 7.0, Unit: UnitItem},
	{Category: CategoryFood, Subtype: "meal_pork", PerUnit: 3.2, Unit: UnitItem},
	{Category: CategoryFood, Subtype: "meal_chicken", PerUnit: 1.8, Unit: UnitItem},
	{Category: CategoryFood, Subtype: "meal_fish", PerUnit: 1.6, Unit: UnitItem},
	{Category: CategoryFood, Subtype: "meal_vegetarian", PerUnit: 1.2, Unit: UnitItem},
	{Category: CategoryFood, Subtype: "meal_vegan", PerUnit: 0.8, Unit: UnitItem},
	{Category: CategoryFood, Subtype: "coffee", PerUnit: 0.2, Unit: UnitItem},

	// Shopping, per item.
	{Category: CategoryShopping, Subtype: "clothing_item", PerUnit: 15.0, Unit: UnitItem},
	{Category: CategoryShopping, Subtype: "electronics_small", PerUnit: 45.0, Unit: UnitItem},
	{Category: CategoryShopping, Subtype: "electronics_large", PerUnit: 250.0, Unit: UnitItem},
	{Category: CategoryShopping, Subtype: "furniture_item", PerUnit: 90.0, Unit: UnitItem},
	{Category: CategoryShopping, Subtype: "book", PerUnit: 1.1, Unit: UnitItem},
}

// Builtin returns the built-in factor table. The built-in rows are validated
// by tests, so construction cannot fail at runtime.
func Builtin() *Table {
	t, err := NewTable(builtinFactors)
	if err != nil {
		panic("factor: builtin table invalid: " + err.Error())
	}
	return t
}
