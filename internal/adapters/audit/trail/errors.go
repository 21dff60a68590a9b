package trail

import "errors"

// Sentinel kinds for trail errors.
var (
	ErrClosed = errors.New("trail closed")
)
