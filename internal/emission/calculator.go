package emission

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mfleet/ecotally/internal/factor"
)

// Compute calculates the CO2 equivalent of a single activity record:
// quantity times the subtype's per-unit factor, unrounded.
//
// Errors propagate unchanged: ErrInvalidQuantity for a negative or
// non-finite quantity, factor.ErrUnknownSubtype for a subtype absent from
// the table. Compute never substitutes a default factor.
func Compute(record ActivityRecord, table *factor.Table) (EmissionResult, error) {
	if math.IsNaN(record.Quantity) || math.IsInf(record.Quantity, 0) {
		return EmissionResult{}, fmt.Errorf("%w: quantity must be finite, got %v (record %s)",
			ErrInvalidQuantity, record.Quantity, record.ID)
	}
	if record.Quantity < 0 {
		return EmissionResult{}, fmt.Errorf("%w: quantity must be non-negative, got %v (record %s)",
			ErrInvalidQuantity, record.Quantity, record.ID)
	}

	f, err := table.Lookup(record.Subtype)
	if err != nil {
		return EmissionResult{}, fmt.Errorf("record %s: %w", record.ID, err)
	}

	return EmissionResult{
		ActivityID: record.ID,
		Category:   f.Category,
		CO2Kg:      record.Quantity * f.PerUnit,
	}, nil
}

// minConcurrentRecords is the snapshot size below which ComputeAll runs
// sequentially; goroutine fan-out costs more than the arithmetic saves.
const minConcurrentRecords = 256

// ComputeAll computes emissions for a whole snapshot, preserving input
// order. Large snapshots are fanned out across GOMAXPROCS workers; Compute
// itself is pure so no synchronization beyond the errgroup is needed. The
// first validation error cancels remaining work and is returned.
func ComputeAll(ctx context.Context, records []ActivityRecord, table *factor.Table) ([]EmissionResult, error) {
	results := make([]EmissionResult, len(records))

	if len(records) < minConcurrentRecords {
		for i, rec := range records {
			res, err := Compute(rec, table)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	chunk := (len(records) + runtime.GOMAXPROCS(0) - 1) / runtime.GOMAXPROCS(0)
	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				res, err := Compute(records[i], table)
				if err != nil {
					return err
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
