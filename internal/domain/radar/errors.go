package radar

import "errors"

// Sentinel kinds for projection errors.
var (
	ErrNoSkills = errors.New("radar needs at least one skill")
)
