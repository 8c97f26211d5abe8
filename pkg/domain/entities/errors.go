package entities

import "errors"

// Sentinel errors shared across the domain. Callers match them with
// errors.Is after unwrapping whatever context was added at the call site.
var (
	// ErrInvalidPackingSpec signals packing constants that are zero or
	// negative. The arithmetic refuses to run rather than silently
	// substituting defaults; default substitution belongs to callers.
	ErrInvalidPackingSpec = errors.New("invalid packing spec")

	// ErrNotFound signals a lookup for an entity the repository does not hold.
	ErrNotFound = errors.New("not found")
)
