package generation

import "errors"

// Sentinel errors surfaced by the orchestrator and record store. Handlers map
// these to HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when no generation exists for an id.
	ErrNotFound = errors.New("generation not found")

	// ErrDuplicateID is returned when inserting a record whose id is already
	// present. It indicates an id-generation bug and should never occur.
	ErrDuplicateID = errors.New("duplicate generation id")

	// ErrInvalidTransition is returned when a requested status change is not
	// allowed by the lifecycle state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrProviderUnavailable is returned when a request names a provider that
	// is not configured or not registered.
	ErrProviderUnavailable = errors.New("provider not available")

	// ErrUnsupportedType is returned when a provider cannot generate the
	// requested content type.
	ErrUnsupportedType = errors.New("content type not supported by provider")

	// ErrBatchTooLarge is returned when a batch submission exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")

	// ErrEmptyPrompt is returned when a request carries no prompt.
	ErrEmptyPrompt = errors.New("prompt is required")
)
