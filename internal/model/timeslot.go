package model

import "fmt"

// Day is one of the six teaching days the timeslot lexicon spans.
type Day string

const (
	Mon Day = "Mon"
	Tue Day = "Tue"
	Wed Day = "Wed"
	Thu Day = "Thu"
	Fri Day = "Fri"
	Sat Day = "Sat"
)

// Days is the ordered list of teaching days, Monday first.
var Days = []Day{Mon, Tue, Wed, Thu, Fri, Sat}

var hourLabels = []string{"10AM", "11AM", "12PM", "1PM", "2PM", "3PM", "4PM", "5PM"}

// Timeslot is one of the 48 fixed `Day_HourAMPM` labels. It is a closed
// lexicon: the loader drops, with a warning, any preference naming a label
// outside Timeslots, so such a label never reaches a solver from input data.
type Timeslot string

// Timeslots is the full, ordered 48-slot lexicon. Ordinal position in this
// slice (1-indexed) is the ordinal used for gap computation.
var Timeslots []Timeslot

// ordinals maps a timeslot label to its 1..48 ordinal.
var ordinals = map[Timeslot]int{}

// dayOf maps a timeslot label to its day.
var dayOf = map[Timeslot]Day{}

func init() {
	for _, d := range Days {
		for _, h := range hourLabels {
			ts := Timeslot(fmt.Sprintf("%s_%s", d, h))
			Timeslots = append(Timeslots, ts)
			ordinals[ts] = len(Timeslots)
			dayOf[ts] = d
		}
	}
}

// Valid reports whether ts belongs to the fixed 48-slot lexicon.
func (ts Timeslot) Valid() bool {
	_, ok := ordinals[ts]
	return ok
}

// Day returns the day component of a timeslot. Callers should only call this
// on a Timeslot that has already passed Valid.
func (ts Timeslot) Day() Day {
	return dayOf[ts]
}

// Ordinal returns the 1..48 position of ts within the week, used for
// same-day gap computation. Returns 0 for an unrecognized timeslot.
func (ts Timeslot) Ordinal() int {
	return ordinals[ts]
}
