package model

// Availability is the veto state of a faculty member on a given day. Only
// Unavailable excludes a day; any other value, including an absent day key,
// means available.
type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

// Faculty is an instructor: the set of courses they can teach and the days
// they are vetoed from teaching on.
type Faculty struct {
	ID           string
	Expertise    map[string]struct{}
	Availability map[Day]Availability
}

// Teaches reports whether this faculty member may teach courseCode.
func (f Faculty) Teaches(courseCode string) bool {
	_, ok := f.Expertise[courseCode]
	return ok
}

// AvailableOn reports whether this faculty member may teach on day d. A day
// absent from the map is available, matching the sparse-key CSV source.
func (f Faculty) AvailableOn(d Day) bool {
	return f.Availability[d] != Unavailable
}
