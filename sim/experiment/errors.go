package experiment

import "errors"

// Configuration errors returned by Config.Validate, wrapped with the
// offending value. Check with errors.Is.
var (
	ErrInvalidConfig       = errors.New("invalid experiment config")
	ErrInvalidHorizon      = errors.New("horizon must be > 0")
	ErrNoAgentCounts       = errors.New("at least one agent count is required")
	ErrInvalidAgentCount   = errors.New("agent count must be > 0")
	ErrDuplicateAgentCount = errors.New("agent count listed twice")
	ErrInvalidReplications = errors.New("replications must be > 0")
	ErrInvalidStreamMode   = errors.New("unknown stream mode")
	ErrInvalidWorkers      = errors.New("workers must be >= 0")
	ErrInvalidTraceLevel   = errors.New("unknown trace level")
)
