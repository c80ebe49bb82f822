package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/models"
)

func instanceAt(t time.Time) models.Instance {
	return models.Instance{Start: t, End: t.Add(time.Hour)}
}

func gdate(y int, m time.Month, d int) *ethiopic.GregorianDate {
	return &ethiopic.GregorianDate{Year: y, Month: m, Day: d}
}

func TestApplyIdentity(t *testing.T) {
	instances := []models.Instance{
		instanceAt(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)),
		instanceAt(time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)),
	}
	got := Apply(State{}, instances)
	assert.Equal(t, instances, got)
	got = Apply(NewState(nil, nil), instances)
	assert.Equal(t, instances, got)
}

func TestApplyBoundaries(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	state := NewState(gdate(2024, time.June, 1), gdate(2024, time.June, 30))

	kept := instanceAt(time.Date(2024, time.June, 30, 23, 59, 0, 0, zone))
	excludedLate := instanceAt(time.Date(2024, time.July, 1, 0, 0, 1, 0, zone))
	excludedEarly := instanceAt(time.Date(2024, time.May, 31, 23, 59, 59, 0, zone))
	keptFirst := instanceAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, zone))

	got := Apply(state, []models.Instance{excludedEarly, keptFirst, kept, excludedLate})
	assert.Equal(t, []models.Instance{keptFirst, kept}, got)
}

func TestApplyBoundsAreZoneLocal(t *testing.T) {
	// 2024-06-30T23:00 in UTC+9 is 2024-06-30T14:00 UTC; the bound must be
	// evaluated in the instance's own zone, not a global one.
	tokyoish := time.FixedZone("UTC+9", 9*60*60)
	inst := instanceAt(time.Date(2024, time.June, 30, 23, 0, 0, 0, tokyoish))

	state := NewState(nil, gdate(2024, time.June, 30))
	got := Apply(state, []models.Instance{inst})
	assert.Len(t, got, 1)

	// The same wall clock one zone-day later is out.
	inst2 := instanceAt(time.Date(2024, time.July, 1, 0, 30, 0, 0, tokyoish))
	got = Apply(state, []models.Instance{inst2})
	assert.Empty(t, got)
}

func TestApplyIndependentBounds(t *testing.T) {
	instances := []models.Instance{
		instanceAt(time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)),
		instanceAt(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)),
		instanceAt(time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)),
	}

	onlyStart := Apply(NewState(gdate(2024, time.June, 1), nil), instances)
	assert.Len(t, onlyStart, 2)

	onlyEnd := Apply(NewState(nil, gdate(2024, time.June, 30)), instances)
	assert.Len(t, onlyEnd, 2)
}

func TestApplyMonotonic(t *testing.T) {
	instances := []models.Instance{
		instanceAt(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)),
		instanceAt(time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)),
		instanceAt(time.Date(2024, time.June, 30, 10, 0, 0, 0, time.UTC)),
	}

	wide := Apply(NewState(gdate(2024, time.June, 1), gdate(2024, time.June, 30)), instances)
	narrow := Apply(NewState(gdate(2024, time.June, 10), gdate(2024, time.June, 20)), instances)
	assert.LessOrEqual(t, len(narrow), len(wide))
	assert.Len(t, narrow, 1)

	// Order is preserved.
	for i := 1; i < len(wide); i++ {
		assert.True(t, wide[i].Start.After(wide[i-1].Start))
	}
}

func TestShowAll(t *testing.T) {
	state := ShowAll()
	assert.True(t, state.Initialized)

	instances := []models.Instance{
		instanceAt(time.Date(1999, time.December, 31, 23, 0, 0, 0, time.UTC)),
		instanceAt(time.Date(2050, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}
	assert.Equal(t, instances, Apply(state, instances))
}
