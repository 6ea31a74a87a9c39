package utils

import "time"

// Clock supplies the reference year that year offsets are measured from.
type Clock interface {
	CurrentYear() int
}

// RealClock reads the year from the local wall clock.
type RealClock struct{}

func (RealClock) CurrentYear() int {
	return time.Now().Year()
}

// FixedClock always reports the same year. Used for pinned reports and tests.
type FixedClock int

func (c FixedClock) CurrentYear() int {
	return int(c)
}
