package emission

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfleet/ecotally/internal/factor"
)

func testTable(t *testing.T) *factor.Table {
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

func TestCompute(t *testing.T) {
	table := testTable(t)
	now := time.Now()

	tests := []struct {
		name    string
		record  ActivityRecord
		wantKg  float64
		wantErr error
	}{
		{
			// Reference scenario: 10 km at 0.21 kg/km.
			name:   "car gasoline 10km",
			record: ActivityRecord{ID: "a1", Category: factor.CategoryTransport, Subtype: "car_gasoline", Quantity: 10.0, Timestamp: now},
			wantKg: 2.1,
		},
		{
			name:   "zero quantity",
			record: ActivityRecord{ID: "a2", Subtype: "electricity", Quantity: 0.0, Timestamp: now},
			wantKg: 0.0,
		},
		{
			name:   "zero-emission mode yields zero regardless of quantity",
			record: ActivityRecord{ID: "a3", Subtype: "cycling", Quantity: 1234.5, Timestamp: now},
			wantKg: 0.0,
		},
		{
			name:   "item count",
			record: ActivityRecord{ID: "a4", Subtype: "meal_beef", Quantity: 2.0, Timestamp: now},
			wantKg: 14.0,
		},
		{
			name:    "negative quantity",
			record:  ActivityRecord{ID: "a5", Subtype: "electricity", Quantity: -5.0, Timestamp: now},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "NaN quantity",
			record:  ActivityRecord{ID: "a6", Subtype: "electricity", Quantity: math.NaN(), Timestamp: now},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "infinite quantity",
			record:  ActivityRecord{ID: "a7", Subtype: "electricity", Quantity: math.Inf(1), Timestamp: now},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "unknown subtype",
			record:  ActivityRecord{ID: "a8", Subtype: "unknown_xyz", Quantity: 1.0, Timestamp: now},
			wantErr: factor.ErrUnknownSubtype,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.record, table)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.record.ID, got.ActivityID)
			assert.InDelta(t, tt.wantKg, got.CO2Kg, 1e-12)
		})
	}
}

func TestComputeExactProduct(t *testing.T) {
	// co2 must equal quantity * factor exactly, with no rounding applied.
	table := testTable(t)
	quantities := []float64{0.001, 1.0 / 3.0, 7.77, 12345.678}

	for _, q := range quantities {
		rec := ActivityRecord{ID: "r", Subtype: "car_gasoline", Quantity: q}
		got, err := Compute(rec, table)
		require.NoError(t, err)
		assert.Equal(t, q*0.21, got.CO2Kg) //nolint:testifylint // exact float product intended
	}
}

func TestRecordValidate(t *testing.T) {
	table := testTable(t)

	assert.NoError(t, ActivityRecord{ID: "ok", Category: factor.CategoryEnergy, Subtype: "electricity", Quantity: 3.5}.Validate(table))
	assert.ErrorIs(t, ActivityRecord{ID: "neg", Category: factor.CategoryEnergy, Subtype: "electricity", Quantity: -1}.Validate(table), ErrInvalidQuantity)
	assert.ErrorIs(t, ActivityRecord{ID: "bad", Category: factor.CategoryTransport, Subtype: "nope", Quantity: 1}.Validate(table), factor.ErrUnknownSubtype)

	// Out-of-enum category, and a known category contradicting the subtype's
	// factor, are both rejected before they can skew a breakdown.
	assert.ErrorIs(t, ActivityRecord{ID: "odd", Category: "magic", Subtype: "electricity", Quantity: 1}.Validate(table), ErrInvalidCategory)
	assert.ErrorIs(t, ActivityRecord{ID: "mix", Category: factor.CategoryTransport, Subtype: "electricity", Quantity: 1}.Validate(table), ErrInvalidCategory)
}

func TestComputeCategoryFromFactor(t *testing.T) {
	// The result carries the factor table's category regardless of what the
	// record claims; aggregation keys on it.
	table := testTable(t)

	got, err := Compute(ActivityRecord{ID: "r", Category: "magic", Subtype: "car_gasoline", Quantity: 1}, table)
	require.NoError(t, err)
	assert.Equal(t, factor.CategoryTransport, got.Category)
}

func TestComputeAll(t *testing.T) {
	table := testTable(t)
	ctx := context.Background()

	t.Run("empty snapshot", func(t *testing.T) {
		results, err := ComputeAll(ctx, nil, table)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("order preserved", func(t *testing.T) {
		records := []ActivityRecord{
			{ID: "r1", Subtype: "car_gasoline", Quantity: 10},
			{ID: "r2", Subtype: "cycling", Quantity: 5},
			{ID: "r3", Subtype: "electricity", Quantity: 2},
		}
		results, err := ComputeAll(ctx, records, table)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "r1", results[0].ActivityID)
		assert.InDelta(t, 2.1, results[0].CO2Kg, 1e-12)
		assert.Equal(t, "r2", results[1].ActivityID)
		assert.Zero(t, results[1].CO2Kg)
		assert.Equal(t, "r3", results[2].ActivityID)
		assert.InDelta(t, 0.7, results[2].CO2Kg, 1e-12)
	})

	t.Run("large snapshot takes concurrent path", func(t *testing.T) {
		records := make([]ActivityRecord, 10_000)
		for i := range records {
			records[i] = ActivityRecord{ID: fmt.Sprintf("r%d", i), Subtype: "car_gasoline", Quantity: 1.0}
		}
		results, err := ComputeAll(ctx, records, table)
		require.NoError(t, err)
		require.Len(t, results, len(records))
		for i, res := range results {
			require.Equal(t, records[i].ID, res.ActivityID)
			require.InDelta(t, 0.21, res.CO2Kg, 1e-12)
		}
	})

	t.Run("first error wins", func(t *testing.T) {
		records := []ActivityRecord{
			{ID: "good", Subtype: "cycling", Quantity: 1},
			{ID: "bad", Subtype: "unknown_xyz", Quantity: 1},
		}
		_, err := ComputeAll(ctx, records, table)
		require.Error(t, err)
		assert.ErrorIs(t, err, factor.ErrUnknownSubtype)
	})
}
