package factor

import (
	"fmt"
	"sort"
)

// Table is an immutable lookup table from subtype to emission factor.
// Construct it once at startup with NewTable, Builtin, or Load; after that it
// is safe for concurrent reads without synchronization.
type Table struct {
	bySubtype map[string]Factor
}

// NewTable builds a Table from factor rows. Every row is validated and
// subtypes must be unique.
func NewTable(factors []Factor) (*Table, error) {
	bySubtype := make(map[string]Factor, len(factors))
	for _, f := range factors {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, exists := bySubtype[f.Subtype]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSubtype, f.Subtype)
		}
		bySubtype[f.Subtype] = f
	}
	return &Table{bySubtype: bySubtype}, nil
}

// Lookup returns the factor for subtype. It returns ErrUnknownSubtype when
// the subtype is not in the table; callers must propagate this rather than
// substituting a default.
func (t *Table) Lookup(subtype string) (Factor, error) {
	f, ok := t.bySubtype[subtype]
	if !ok {
		return Factor{}, fmt.Errorf("%w: %q", ErrUnknownSubtype, subtype)
	}
	return f, nil
}

// Contains reports whether subtype resolves to a factor.
func (t *Table) Contains(subtype string) bool {
	_, ok := t.bySubtype[subtype]
	return ok
}

// Len returns the number of factor rows in the table.
func (t *Table) Len() int {
	return len(t.bySubtype)
}

// All returns every factor row sorted by category priority, then subtype.
// The slice is a copy; mutating it does not affect the table.
func (t *Table) All() []Factor {
	out := make([]Factor, 0, len(t.bySubtype))
	for _, f := range t.bySubtype {
		out = append(out, f)
	}

	priority := make(map[Category]int, len(Categories()))
	for i, c := range Categories() {
		priority[c] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if priority[out[i].Category] != priority[out[j].Category] {
			return priority[out[i].Category] < priority[out[j].Category]
		}
		return out[i].Subtype < out[j].Subtype
	})
	return out
}
