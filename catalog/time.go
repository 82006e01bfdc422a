package catalog

import "time"

// secondsToDuration converts a fractional-second offset (as used
// throughout the solver's RHS and delta vectors) into a time.Duration at
// millisecond resolution, the precision Event.OriginTime is kept at.
func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec*1000) * time.Millisecond
}
