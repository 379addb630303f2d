package engine

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors comparable with errors.Is().
var (
	// ErrInvalidBaseline indicates a baseline with a non-positive average.
	// Classification against such a baseline is undefined; the division is
	// guarded explicitly rather than left to produce Inf.
	ErrInvalidBaseline = constError("invalid comparison baseline")

	// ErrInvalidGranularity indicates an unsupported period granularity.
	ErrInvalidGranularity = constError("invalid period granularity")

	// ErrInvalidPeriod indicates a period whose end does not follow its start.
	ErrInvalidPeriod = constError("invalid period bounds")
)
