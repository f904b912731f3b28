package model

import "sort"

// UniversityData is the immutable record produced by internal/loader and
// consumed by every solver. It is read-only for the lifetime of a solve: no
// solver package mutates any of its fields.
type UniversityData struct {
	// AllCourses indexes every catalog course by code, scheduled or not.
	AllCourses map[string]Course
	// ScheduledCourses is AllCourses filtered to the types that receive a
	// timetable session (CourseType.Scheduled()).
	ScheduledCourses []Course
	// CourseEnrollments is the headcount registered for each course code.
	CourseEnrollments map[string]int
	Faculty           map[string]Faculty
	Rooms             map[string]Room
	Preferences       Preferences

	// ProfessorOrder and RoomOrder fix the iteration order ProfessorIDs and
	// RoomIDs return — the original CSV row order, set by internal/loader.
	// This matters beyond cosmetics: the genetic solver indexes into these
	// lists positionally by RNG draw (genetic.genePool.randomSession), so a
	// fixed --seed must see a fixed alphabet order to reproduce a timetable
	// across runs. Go's map iteration order is randomized per range, not
	// merely unspecified, so ranging over Faculty/Rooms directly would make
	// the same seed produce a different timetable from run to run. Callers
	// that build a UniversityData by hand (tests, fixtures) may leave these
	// nil; ProfessorIDs/RoomIDs fall back to a sorted key list so the result
	// is still deterministic, just not CSV-row-ordered.
	ProfessorOrder []string
	RoomOrder      []string
}

// CourseCodes returns the course codes of ScheduledCourses, in catalog
// order. This is the fixed COURSE_LIST the genetic solver draws genes from.
func (u UniversityData) CourseCodes() []string {
	codes := make([]string, len(u.ScheduledCourses))
	for i, c := range u.ScheduledCourses {
		codes[i] = c.Code
	}
	return codes
}

// ProfessorIDs returns every known faculty id in a fixed order: the CSV row
// order recorded in ProfessorOrder when set by internal/loader, or sorted
// order otherwise. The result must never depend on Go's randomized map
// iteration, since the genetic solver's RNG draws index into it positionally.
func (u UniversityData) ProfessorIDs() []string {
	if u.ProfessorOrder != nil {
		return append([]string(nil), u.ProfessorOrder...)
	}
	ids := make([]string, 0, len(u.Faculty))
	for id := range u.Faculty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RoomIDs returns every known room id in a fixed order, for the same reason
// and with the same fallback as ProfessorIDs.
func (u UniversityData) RoomIDs() []string {
	if u.RoomOrder != nil {
		return append([]string(nil), u.RoomOrder...)
	}
	ids := make([]string, 0, len(u.Rooms))
	for id := range u.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
