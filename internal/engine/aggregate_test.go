package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfleet/ecotally/internal/emission"
	"github.com/mfleet/ecotally/internal/factor"
)

func engineTable(t *testing.T) *factor.Table {
	t.Helper()
	table, err := factor.NewTable([]factor.Factor{
		{Category: factor.CategoryTransport, Subtype: "car_gasoline", PerUnit: 0.21, Unit: factor.UnitKilometre},
		{Category: factor.CategoryTransport, Subtype: "cycling", PerUnit: 0.0, Unit: factor.UnitKilometre},
		{Category: factor.CategoryEnergy, Subtype: "electricity", PerUnit: 0.35, Unit: factor.UnitKilowattHour},
		{Category: factor.CategoryFood, Subtype: "meal_beef", PerUnit: 7.0, Unit: factor.UnitItem},
	})
	require.NoError(t, err)
	return table
}

func rec(id, subtype string, cat factor.Category, qty float64, ts time.Time) emission.ActivityRecord {
	return emission.ActivityRecord{ID: id, Category: cat, Subtype: subtype, Quantity: qty, Timestamp: ts}
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	table := engineTable(t)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	records := []emission.ActivityRecord{
		rec("r1", "car_gasoline", factor.CategoryTransport, 10, start.Add(8*time.Hour)),  // 2.1
		rec("r2", "electricity", factor.CategoryEnergy, 4, start.Add(12*time.Hour)),      // 1.4
		rec("r3", "meal_beef", factor.CategoryFood, 1, start.Add(19*time.Hour)),          // 7.0
		rec("r4", "car_gasoline", factor.CategoryTransport, 100, start.AddDate(0, 0, 2)), // outside
	}

	agg, err := Aggregate(ctx, records, table, start, end)
	require.NoError(t, err)

	assert.InDelta(t, 10.5, agg.TotalCO2Kg, 1e-12)
	assert.Equal(t, 3, agg.ActivityCount)
	assert.InDelta(t, 2.1, agg.ByCategory[factor.CategoryTransport], 1e-12)
	assert.InDelta(t, 1.4, agg.ByCategory[factor.CategoryEnergy], 1e-12)
	assert.InDelta(t, 7.0, agg.ByCategory[factor.CategoryFood], 1e-12)
}

func TestAggregateBoundaries(t *testing.T) {
	ctx := context.Background()
	table := engineTable(t)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	t.Run("record at period start is included", func(t *testing.T) {
		agg, err := Aggregate(ctx, []emission.ActivityRecord{
			rec("r1", "car_gasoline", factor.CategoryTransport, 1, start),
		}, table, start, end)
		require.NoError(t, err)
		assert.Equal(t, 1, agg.ActivityCount)
	})

	t.Run("record at period end is excluded", func(t *testing.T) {
		agg, err := Aggregate(ctx, []emission.ActivityRecord{
			rec("r1", "car_gasoline", factor.CategoryTransport, 1, end),
		}, table, start, end)
		require.NoError(t, err)
		assert.Zero(t, agg.ActivityCount)
		assert.Zero(t, agg.TotalCO2Kg)
	})

	t.Run("inverted period rejected", func(t *testing.T) {
		_, err := Aggregate(ctx, nil, table, end, start)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestAggregateEmptyIdentity(t *testing.T) {
	ctx := context.Background()
	table := engineTable(t)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	agg, err := Aggregate(ctx, nil, table, start, start.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Zero(t, agg.TotalCO2Kg)
	assert.Zero(t, agg.ActivityCount)
	assert.Empty(t, agg.ByCategory)
}

func TestAggregateOrderIndependent(t *testing.T) {
	ctx := context.Background()
	table := engineTable(t)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	records := []emission.ActivityRecord{
		rec("r1", "car_gasoline", factor.CategoryTransport, 3.7, start.Add(1*time.Hour)),
		rec("r2", "electricity", factor.CategoryEnergy, 11.2, start.Add(2*time.Hour)),
		rec("r3", "meal_beef", factor.CategoryFood, 2, start.Add(3*time.Hour)),
		rec("r4", "cycling", factor.CategoryTransport, 40, start.Add(4*time.Hour)),
		rec("r5", "car_gasoline", factor.CategoryTransport, 18.05, start.Add(5*time.Hour)),
	}

	base, err := Aggregate(ctx, records, table, start, end)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for range 10 {
		shuffled := make([]emission.ActivityRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		agg, aggErr := Aggregate(ctx, shuffled, table, start, end)
		require.NoError(t, aggErr)
		assert.InDelta(t, base.TotalCO2Kg, agg.TotalCO2Kg, 1e-9)
		assert.Equal(t, base.ActivityCount, agg.ActivityCount)
		for cat, sub := range base.ByCategory {
			assert.InDelta(t, sub, agg.ByCategory[cat], 1e-9)
		}
	}
}

func TestAggregateCategoryFromFactor(t *testing.T) {
	// The breakdown keys on the factor table's category, so a record carrying
	// a stray category still files its emissions where the dominant-category
	// scan can see them.
	ctx := context.Background()
	table := engineTable(t)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []emission.ActivityRecord{
		rec("r1", "car_gasoline", "magic", 100, start.Add(time.Hour)),
	}

	agg, err := Aggregate(ctx, records, table, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.InDelta(t, 21.0, agg.ByCategory[factor.CategoryTransport], 1e-9)
	assert.NotContains(t, agg.ByCategory, factor.Category("magic"))
	assert.Equal(t, factor.CategoryTransport, agg.DominantCategory())
	assert.InDelta(t, agg.TotalCO2Kg, agg.ByCategory[factor.CategoryTransport], 1e-9)
}

func TestAggregateBadRecordAborts(t *testing.T) {
	ctx := context.Background()
	table := engineTable(t)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []emission.ActivityRecord{
		rec("good", "car_gasoline", factor.CategoryTransport, 5, start.Add(time.Hour)),
		rec("bad", "unknown_xyz", factor.CategoryTransport, 5, start.Add(2*time.Hour)),
	}

	_, err := Aggregate(ctx, records, table, start, start.AddDate(0, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, factor.ErrUnknownSubtype)
}

func TestAggregateByPeriod(t *testing.T) {
	ctx := context.Background()
	table := engineTable(t)

	// Monday and the following Sunday fall in one ISO week, the next Monday
	// opens a new one.
	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 16, 21, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2025, 3, 17, 7, 0, 0, 0, time.UTC)

	records := []emission.ActivityRecord{
		rec("r1", "car_gasoline", factor.CategoryTransport, 10, monday),
		rec("r2", "car_gasoline", factor.CategoryTransport, 20, sunday),
		rec("r3", "car_gasoline", factor.CategoryTransport, 30, nextMonday),
	}

	aggs, err := AggregateByPeriod(ctx, records, table, GranularityWeek, time.UTC)
	require.NoError(t, err)
	require.Len(t, aggs, 2)

	assert.InDelta(t, 6.3, aggs[0].TotalCO2Kg, 1e-12) // (10+20) * 0.21
	assert.Equal(t, 2, aggs[0].ActivityCount)
	assert.InDelta(t, 6.3, aggs[1].TotalCO2Kg, 1e-12) // 30 * 0.21
	assert.True(t, aggs[0].PeriodStart.Before(aggs[1].PeriodStart))

	t.Run("empty snapshot yields no periods", func(t *testing.T) {
		got, emptyErr := AggregateByPeriod(ctx, nil, table, GranularityDay, time.UTC)
		require.NoError(t, emptyErr)
		assert.Empty(t, got)
	})

	t.Run("invalid granularity rejected", func(t *testing.T) {
		_, badErr := AggregateByPeriod(ctx, records, table, "hour", time.UTC)
		require.Error(t, badErr)
		assert.ErrorIs(t, badErr, ErrInvalidGranularity)
	})
}

func TestDominantCategory(t *testing.T) {
	tests := []struct {
		name string
		by   map[factor.Category]float64
		want factor.Category
	}{
		{
			name: "largest subtotal wins",
			by: map[factor.Category]float64{
				factor.CategoryTransport: 2.0,
				factor.CategoryFood:      9.0,
			},
			want: factor.CategoryFood,
		},
		{
			name: "tie broken by priority order",
			by: map[factor.Category]float64{
				factor.CategoryEnergy: 5.0,
				factor.CategoryFood:   5.0,
			},
			want: factor.CategoryEnergy,
		},
		{
			name: "empty aggregate defaults to transport",
			by:   map[factor.Category]float64{},
			want: factor.CategoryTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := PeriodAggregate{ByCategory: tt.by}
			assert.Equal(t, tt.want, agg.DominantCategory())
		})
	}
}
