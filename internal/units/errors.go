package units

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for unit normalization.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrUnknownUnit indicates an unrecognized unit string.
	// This error is returned when a normalizer receives a unit outside its set.
	ErrUnknownUnit = constError("unknown unit")

	// ErrNegativeQuantity indicates a negative input quantity.
	// Feedstock masses and flow rates cannot be negative.
	ErrNegativeQuantity = constError("negative quantity")

	// ErrNonFiniteQuantity indicates a NaN or infinite input quantity,
	// or a conversion whose result overflows to infinity.
	ErrNonFiniteQuantity = constError("non-finite quantity")
)
