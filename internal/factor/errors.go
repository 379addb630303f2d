package factor

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors comparable with errors.Is().
var (
	// ErrUnknownSubtype indicates a subtype absent from the factor table.
	// Lookup failures must propagate to the caller; silently defaulting a
	// factor would corrupt every aggregate built on top of it.
	ErrUnknownSubtype = constError("unknown activity subtype")

	// ErrInvalidFactor indicates a malformed factor row (bad category, bad
	// unit, or a negative or non-finite per-unit value).
	ErrInvalidFactor = constError("invalid emission factor")

	// ErrDuplicateSubtype indicates the same subtype appears twice in a
	// factor table definition.
	ErrDuplicateSubtype = constError("duplicate subtype in factor table")

	// ErrUnsupportedSchema indicates a factor table file whose schema_version
	// is outside the supported range.
	ErrUnsupportedSchema = constError("unsupported factor table schema version")
)
