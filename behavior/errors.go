package behavior

import "errors"

var (
	// ErrBehaviorRepositoryRequired is returned when a Recorder is
	// constructed without a behavior repository.
	ErrBehaviorRepositoryRequired = errors.New("behavior repository is required")
)
