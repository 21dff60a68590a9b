package testsignups

import "time"

// HTTP status code constants.
const (
	StatusOK         = 200
	StatusBadRequest = 400
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	ProcessingDelay      = 2 * time.Second
	PercentageMultiplier = 100
)

// Signup generation constants. Every duplicateEvery-th signup repeats the
// previous one so the conflict path gets exercised on each run.
const (
	duplicateEvery = 10
)
