package domain

// Size represents the complexity class of a task.
type Size string

const (
	SizeTrivial         Size = "trivial"
	SizeStraightforward Size = "straightforward"
	SizeComplex         Size = "complex"
	SizeUncertain       Size = "uncertain"
	SizePioneering      Size = "pioneering"
)

// TimeEstimate represents the expected duration class of a task.
type TimeEstimate string

const (
	TimeHours       TimeEstimate = "hours"
	TimeDays        TimeEstimate = "days"
	TimeWeek        TimeEstimate = "week"
	TimeSprint      TimeEstimate = "sprint"
	TimeMultiSprint TimeEstimate = "multi-sprint"
)

// sizeRanks orders sizes from simplest to hardest. Comparisons between tasks
// always use these integer ranks, never string equality.
var sizeRanks = map[Size]int{
	SizeTrivial:         1,
	SizeStraightforward: 2,
	SizeComplex:         3,
	SizeUncertain:       4,
	SizePioneering:      5,
}

var timeRanks = map[TimeEstimate]int{
	TimeHours:       1,
	TimeDays:        2,
	TimeWeek:        3,
	TimeSprint:      4,
	TimeMultiSprint: 5,
}

// AllSizes returns all valid size values in rank order.
func AllSizes() []Size {
	return []Size{SizeTrivial, SizeStraightforward, SizeComplex, SizeUncertain, SizePioneering}
}

// AllTimeEstimates returns all valid time estimate values in rank order.
func AllTimeEstimates() []TimeEstimate {
	return []TimeEstimate{TimeHours, TimeDays, TimeWeek, TimeSprint, TimeMultiSprint}
}

// Rank returns the integer position of the size in the complexity order.
// Unknown values rank 0, below every valid value.
func (s Size) Rank() int {
	return sizeRanks[s]
}

// IsValid returns true if the size is a known valid value.
func (s Size) IsValid() bool {
	_, ok := sizeRanks[s]
	return ok
}

// Rank returns the integer position of the estimate in the duration order.
// Unknown values rank 0, below every valid value.
func (t TimeEstimate) Rank() int {
	return timeRanks[t]
}

// IsValid returns true if the estimate is a known valid value.
func (t TimeEstimate) IsValid() bool {
	_, ok := timeRanks[t]
	return ok
}

// SizeForRank returns the size at the given rank, clamping out-of-range
// ranks to the nearest end of the scale.
func SizeForRank(rank int) Size {
	sizes := AllSizes()
	if rank < 1 {
		return sizes[0]
	}
	if rank > len(sizes) {
		return sizes[len(sizes)-1]
	}
	return sizes[rank-1]
}

// TimeForRank returns the time estimate at the given rank, clamping
// out-of-range ranks to the nearest end of the scale.
func TimeForRank(rank int) TimeEstimate {
	times := AllTimeEstimates()
	if rank < 1 {
		return times[0]
	}
	if rank > len(times) {
		return times[len(times)-1]
	}
	return times[rank-1]
}

// SimplifiedTime returns the default time estimate for a child carved out
// of a task estimated at t. Decomposition aims at chunks that land within
// days, so anything above days simplifies straight to days; shorter
// estimates step down one rank, flooring at hours.
func SimplifiedTime(t TimeEstimate) TimeEstimate {
	if t.Rank() > TimeDays.Rank() {
		return TimeDays
	}
	return TimeForRank(t.Rank() - 1)
}

// CoerceSize applies the lenient coercion policy for size values arriving
// from untrusted sources: a valid value passes through, anything else
// becomes the fallback. Every boundary that receives oracle-supplied size
// data goes through this one function.
func CoerceSize(raw string, fallback Size) Size {
	if s := Size(raw); s.IsValid() {
		return s
	}
	return fallback
}

// CoerceTime applies the lenient coercion policy for time estimates from
// untrusted sources.
func CoerceTime(raw string, fallback TimeEstimate) TimeEstimate {
	if t := TimeEstimate(raw); t.IsValid() {
		return t
	}
	return fallback
}
