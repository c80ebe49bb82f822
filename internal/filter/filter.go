// Package filter narrows event instances to an optional civil date range.
// Bounds are interpreted in each instance's own time zone: the start bound is
// midnight of that day, the end bound its last representable instant, both
// inclusive. With no bounds set the filter is the identity.
package filter

import (
	"time"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/models"
)

// Sentinel bounds used by callers whose UI state must distinguish "no filter
// configured yet" from "explicitly showing everything". The convention belongs
// to the surrounding application; the filter treats them as ordinary dates.
var (
	ShowAllStart = ethiopic.GregorianDate{Year: 1900, Month: time.January, Day: 1}
	ShowAllEnd   = ethiopic.GregorianDate{Year: 2100, Month: time.December, Day: 31}
)

// State is the immutable filter selection. It is passed into and returned
// from filtering calls rather than tracked as hidden mutable fields, so there
// is no first-call-vs-subsequent-call branching anywhere.
type State struct {
	Initialized bool
	StartDate   *ethiopic.GregorianDate
	EndDate     *ethiopic.GregorianDate
}

// NewState builds an initialized selection; either bound may be nil.
func NewState(start, end *ethiopic.GregorianDate) State {
	return State{Initialized: true, StartDate: start, EndDate: end}
}

// ShowAll is the initialized "show everything" selection.
func ShowAll() State {
	start, end := ShowAllStart, ShowAllEnd
	return NewState(&start, &end)
}

// Apply retains the instances that pass both bounds independently. Filtering
// is non-destructive and order-preserving; with both bounds nil the input is
// returned unchanged.
func Apply(state State, instances []models.Instance) []models.Instance {
	if state.StartDate == nil && state.EndDate == nil {
		return instances
	}

	out := make([]models.Instance, 0, len(instances))
	for _, inst := range instances {
		if retains(state, inst) {
			out = append(out, inst)
		}
	}
	return out
}

func retains(state State, inst models.Instance) bool {
	loc := inst.Start.Location()
	if state.StartDate != nil && inst.Start.Before(state.StartDate.StartOfDay(loc)) {
		return false
	}
	if state.EndDate != nil && inst.Start.After(state.EndDate.EndOfDay(loc)) {
		return false
	}
	return true
}
