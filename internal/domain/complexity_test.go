package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeRankOrdering(t *testing.T) {
	prev := 0
	for _, s := range AllSizes() {
		assert.Equal(t, prev+1, s.Rank(), "size %q", s)
		prev = s.Rank()
	}
}

func TestTimeEstimateRankOrdering(t *testing.T) {
	prev := 0
	for _, te := range AllTimeEstimates() {
		assert.Equal(t, prev+1, te.Rank(), "time estimate %q", te)
		prev = te.Rank()
	}
}

func TestUnknownValuesRankZero(t *testing.T) {
	assert.Equal(t, 0, Size("gigantic").Rank())
	assert.Equal(t, 0, TimeEstimate("decade").Rank())
	assert.False(t, Size("gigantic").IsValid())
	assert.False(t, TimeEstimate("decade").IsValid())
}

func TestSizeForRankClamps(t *testing.T) {
	assert.Equal(t, SizeTrivial, SizeForRank(0))
	assert.Equal(t, SizeTrivial, SizeForRank(-3))
	assert.Equal(t, SizeComplex, SizeForRank(3))
	assert.Equal(t, SizePioneering, SizeForRank(99))
}

func TestTimeForRankClamps(t *testing.T) {
	assert.Equal(t, TimeHours, TimeForRank(0))
	assert.Equal(t, TimeSprint, TimeForRank(4))
	assert.Equal(t, TimeMultiSprint, TimeForRank(42))
}

func TestSimplifiedTime(t *testing.T) {
	assert.Equal(t, TimeDays, SimplifiedTime(TimeMultiSprint))
	assert.Equal(t, TimeDays, SimplifiedTime(TimeSprint))
	assert.Equal(t, TimeDays, SimplifiedTime(TimeWeek))
	assert.Equal(t, TimeHours, SimplifiedTime(TimeDays))
	assert.Equal(t, TimeHours, SimplifiedTime(TimeHours))
}

func TestCoerceSize(t *testing.T) {
	assert.Equal(t, SizeComplex, CoerceSize("complex", SizeTrivial))
	assert.Equal(t, SizeUncertain, CoerceSize("enormous", SizeUncertain))
	assert.Equal(t, SizeStraightforward, CoerceSize("", SizeStraightforward))
}

func TestCoerceTime(t *testing.T) {
	assert.Equal(t, TimeWeek, CoerceTime("week", TimeHours))
	assert.Equal(t, TimeDays, CoerceTime("fortnight", TimeDays))
	assert.Equal(t, TimeHours, CoerceTime("", TimeHours))
}
