package model

// CourseType is a closed enum of the catalog course kinds. Internship and
// Fieldwork never participate in timeslot scheduling; Seminar and Studio
// were added alongside Lecture and Lab (see DESIGN.md) since real catalog
// fixtures carry more than four kinds.
type CourseType string

const (
	Lecture    CourseType = "Lecture"
	Lab        CourseType = "Lab"
	Internship CourseType = "Internship"
	Fieldwork  CourseType = "Fieldwork"
	Seminar    CourseType = "Seminar"
	Studio     CourseType = "Studio"
)

// Scheduled reports whether courses of this type are assigned a session at
// all. Internship and Fieldwork are handled outside the timetable.
func (t CourseType) Scheduled() bool {
	return t != Internship && t != Fieldwork
}

// Course is a single catalog entry. Code is unique across a UniversityData.
type Course struct {
	Code string
	Type CourseType
}
