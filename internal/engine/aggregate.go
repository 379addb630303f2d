package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mfleet/ecotally/internal/emission"
	"github.com/mfleet/ecotally/internal/factor"
	"github.com/mfleet/ecotally/internal/logging"
)

// PeriodAggregate is the summed emissions over one period, broken down by
// category. Derived data: recomputed from the underlying records whenever
// the snapshot changes, never persisted by this layer.
type PeriodAggregate struct {
	PeriodStart time.Time                   `json:"period_start"`
	PeriodEnd   time.Time                   `json:"period_end"`
	TotalCO2Kg  float64                     `json:"total_co2_kg"`
	ByCategory  map[factor.Category]float64 `json:"by_category"`
	// ActivityCount is the number of records that fell inside the period.
	ActivityCount int `json:"activity_count"`
}

// Aggregate sums the emissions of all records whose timestamp falls in
// [start, end). An empty bucket yields a zero total, never an error. The
// result is independent of input order.
//
// Every in-period record is computed through the factor table; a validation
// failure on any of them aborts the aggregate, because a silently skipped
// record would understate the total without signal.
func Aggregate(
	ctx context.Context,
	records []emission.ActivityRecord,
	table *factor.Table,
	start, end time.Time,
) (PeriodAggregate, error) {
	if !end.After(start) {
		return PeriodAggregate{}, fmt.Errorf("%w: end %s not after start %s",
			ErrInvalidPeriod, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	agg := PeriodAggregate{
		PeriodStart: start,
		PeriodEnd:   end,
		ByCategory:  make(map[factor.Category]float64),
	}

	for _, rec := range records {
		if rec.Timestamp.Before(start) || !rec.Timestamp.Before(end) {
			continue
		}
		res, err := emission.Compute(rec, table)
		if err != nil {
			return PeriodAggregate{}, err
		}
		agg.TotalCO2Kg += res.CO2Kg
		// Keyed by the factor's category, not the record's, so a record
		// carrying a stray category cannot skew the breakdown.
		agg.ByCategory[res.Category] += res.CO2Kg
		agg.ActivityCount++
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("operation", "aggregate").
		Time("period_start", start).
		Time("period_end", end).
		Int("activity_count", agg.ActivityCount).
		Float64("total_co2_kg", agg.TotalCO2Kg).
		Msg("aggregated period")

	return agg, nil
}

// AggregateByPeriod buckets a whole snapshot into calendar-aligned periods
// at granularity g and aggregates each bucket. Results are sorted by period
// start. Periods with no activity do not appear; an all-empty snapshot
// yields an empty slice.
func AggregateByPeriod(
	ctx context.Context,
	records []emission.ActivityRecord,
	table *factor.Table,
	g Granularity,
	loc *time.Location,
) ([]PeriodAggregate, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}

	buckets := make(map[time.Time][]emission.ActivityRecord)
	for _, rec := range records {
		start, _ := PeriodOf(rec.Timestamp, g, loc)
		buckets[start] = append(buckets[start], rec)
	}

	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	aggregates := make([]PeriodAggregate, 0, len(starts))
	for _, start := range starts {
		_, end := PeriodOf(start, g, loc)
		agg, err := Aggregate(ctx, buckets[start], table, start, end)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

// DominantCategory returns the category with the largest subtotal, breaking
// ties by the fixed priority order Transport > Energy > Food > Shopping so
// the same aggregate always selects the same category.
func (a PeriodAggregate) DominantCategory() factor.Category {
	best := factor.CategoryTransport
	bestValue := a.ByCategory[best]
	for _, c := range factor.Categories() {
		if a.ByCategory[c] > bestValue {
			best = c
			bestValue = a.ByCategory[c]
		}
	}
	return best
}
