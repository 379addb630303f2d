package emission

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors comparable with errors.Is().
var (
	// ErrInvalidQuantity indicates a negative, NaN, or infinite activity
	// quantity. Deterministic input validation: never retried, never defaulted.
	ErrInvalidQuantity = constError("invalid activity quantity")

	// ErrInvalidCategory indicates a record whose category is outside the
	// known set or contradicts its subtype's factor table entry. Filing such
	// a record would misattribute its emissions in the per-category breakdown.
	ErrInvalidCategory = constError("invalid activity category")
)
