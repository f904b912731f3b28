// Package projection builds the per-professor and per-program views out of
// a master Timetable.
package projection

import "github.com/campusforge/timetable/internal/model"

// ByProfessor returns, for every known faculty id (even ones with no
// sessions), the sessions in master where ProfID matches, in master order.
func ByProfessor(master model.Timetable, faculty map[string]model.Faculty) map[string][]model.Session {
	out := make(map[string][]model.Session, len(faculty))
	for id := range faculty {
		out[id] = nil
	}
	for _, s := range master {
		if _, known := out[s.ProfID]; known {
			out[s.ProfID] = append(out[s.ProfID], s)
		}
	}
	return out
}

// ByProgram returns, for every known student group (even ones with no
// sessions), the first-wins session for each of the group's required
// courses that appears somewhere in master. Courses scheduled more than
// once in the bag resolve to their first occurrence; courses absent from
// master are skipped silently.
func ByProgram(master model.Timetable, groups model.StudentGroups) map[string][]model.Session {
	sessionByCourse := make(map[string]model.Session, len(master))
	for _, s := range master {
		if _, exists := sessionByCourse[s.CourseCode]; !exists {
			sessionByCourse[s.CourseCode] = s
		}
	}

	out := make(map[string][]model.Session, len(groups))
	for gid, g := range groups {
		var sessions []model.Session
		for _, course := range g.CourseList {
			if s, ok := sessionByCourse[course]; ok {
				sessions = append(sessions, s)
			}
		}
		out[gid] = sessions
	}
	return out
}
