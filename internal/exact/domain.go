package exact

import "github.com/campusforge/timetable/internal/model"

// candidate is one (professor, room, timeslot) triple a course could be
// placed at. It is the exact-solver equivalent of a boolean decision
// variable x[c,p,r,t] — one candidate per course per surviving variable.
type candidate struct {
	ProfID   string
	RoomID   string
	Timeslot model.Timeslot
}

// buildDomains constructs, for each scheduled course, the list of candidates
// that survive expertise and capacity pre-pruning. A candidate is never
// created for a (course, professor) pair outside expertise, a (course, room)
// pair under capacity, or a day the professor is unavailable on — exactly
// the pruning the distilled spec's decision-variable model requires.
func buildDomains(data model.UniversityData) map[string][]candidate {
	profIDs := data.ProfessorIDs()
	roomIDs := data.RoomIDs()

	domains := make(map[string][]candidate, len(data.ScheduledCourses))
	for _, course := range data.ScheduledCourses {
		enrollment := data.CourseEnrollments[course.Code]
		var values []candidate
		for _, pid := range profIDs {
			prof := data.Faculty[pid]
			if !prof.Teaches(course.Code) {
				continue
			}
			for _, rid := range roomIDs {
				room := data.Rooms[rid]
				if !room.Fits(enrollment) {
					continue
				}
				for _, ts := range model.Timeslots {
					if !prof.AvailableOn(ts.Day()) {
						continue
					}
					values = append(values, candidate{ProfID: pid, RoomID: rid, Timeslot: ts})
				}
			}
		}
		domains[course.Code] = values
	}
	return domains
}
