package model

// StudentGroup is a cohort of students that must never have two concurrent
// sessions. It is either a program cohort or a k-means cluster; solvers
// treat both uniformly.
type StudentGroup struct {
	ID string
	// CourseList preserves the original, caller-supplied course order (the
	// program CSV's course-code list, or a cluster's sorted course codes) so
	// projection.ByProgram can report sessions in the order a human reading
	// the program sheet would expect, rather than Go's unordered map
	// iteration.
	CourseList []string
	Courses    map[string]struct{}
}

// Has reports whether courseCode belongs to this group's required courses.
func (g StudentGroup) Has(courseCode string) bool {
	_, ok := g.Courses[courseCode]
	return ok
}

// StudentGroups maps group id to StudentGroup.
type StudentGroups map[string]StudentGroup

// NewStudentGroups builds a StudentGroups from a plain id -> course-code-list
// mapping, the shape produced by both internal/loader (program cohorts) and
// internal/cluster (k-means clusters).
func NewStudentGroups(groups map[string][]string) StudentGroups {
	out := make(StudentGroups, len(groups))
	for id, courses := range groups {
		set := make(map[string]struct{}, len(courses))
		for _, c := range courses {
			set[c] = struct{}{}
		}
		out[id] = StudentGroup{ID: id, CourseList: courses, Courses: set}
	}
	return out
}
