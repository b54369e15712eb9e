package usecase

import (
	"time"
)

// Clock supplies the current instant. Injected so temporal partitioning of
// bookings is deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}
