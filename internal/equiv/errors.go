package equiv

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidInput indicates a negative or non-finite CO2e total.
var ErrInvalidInput = constError("invalid carbon total for equivalency")
