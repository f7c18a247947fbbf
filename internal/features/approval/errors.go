package approval

import "errors"

// Error taxonomy of the engine. Callers match with errors.Is; the HTTP
// layer maps each onto a status code. Unauthorized and InvalidState are
// expected race/stale-UI outcomes and are never logged as system errors.
var (
	// ErrValidation marks a malformed workflow template reaching submission.
	ErrValidation = errors.New("workflow validation failed")

	// ErrResolutionFailure marks an organizational lookup failing mid
	// resolution. Nothing is persisted; the caller retries wholesale.
	ErrResolutionFailure = errors.New("approver resolution failed")

	// ErrUnauthorized marks an actor that is not the current approver.
	ErrUnauthorized = errors.New("actor is not the current approver")

	// ErrInvalidState marks a decision against a terminal or not-yet
	// submitted requisition, including lost concurrent races.
	ErrInvalidState = errors.New("requisition is not in an actionable state")

	// ErrInvalidArgument marks bad decision input, e.g. a rejection
	// without a reason.
	ErrInvalidArgument = errors.New("invalid decision argument")

	// ErrNotFound marks a requisition id that matches nothing.
	ErrNotFound = errors.New("requisition not found")
)
