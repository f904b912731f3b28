// Package loader reads the tabular university data — courses, faculty,
// rooms, enrollments, programs, preferences — into the immutable
// model.UniversityData record every solver consumes. It mirrors the
// original source's data_loader.py in shape (six CSV tables in, one
// processed record out) but fails fast on malformed input instead of
// printing a warning and returning partial data.
//
// No CSV-parsing library appears anywhere in the reference corpus this
// module was built from; encoding/csv is the standard library's direct
// counterpart to the pandas.read_csv calls data_loader.py makes, so it is
// used here without reaching for a third-party dependency (see DESIGN.md).
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/campusforge/timetable/internal/model"
	"github.com/campusforge/timetable/internal/telemetry"
)

// Tables names the six CSV files LoadDir expects inside a data directory.
var Tables = struct {
	Courses, Faculty, Rooms, Enrollments, Programs, Preferences string
}{
	Courses:     "courses.csv",
	Faculty:     "faculty.csv",
	Rooms:       "rooms.csv",
	Enrollments: "student_enrollments.csv",
	Programs:    "programs.csv",
	Preferences: "preferences.csv",
}

// Result is everything LoadDir produces: the processed UniversityData, and
// either pre-defined program groups (ProgramGroups non-nil, KMeansNeeded
// false) or raw per-student course registrations for internal/cluster to
// discover cohorts from (KMeansNeeded true).
type Result struct {
	Data                model.UniversityData
	ProgramGroups       model.StudentGroups
	StudentRegistrations map[string][]string
	KMeansNeeded        bool
}

// LoadDir reads all six tables from dir and assembles a Result. It fails
// fast with a *model.ValidationError on a duplicate course code, a
// non-integer or negative room capacity, or a program that lists a course
// missing from the courses table. Preference rules naming an unknown
// professor, course, room or timeslot, or an unrecognized rule kind, are
// dropped with a warning instead. Enrollments are counted from the
// registration rows, so there is no enrollment number to validate.
func LoadDir(dir string, log telemetry.Logger) (*Result, error) {
	courses, err := readCourses(filepath.Join(dir, Tables.Courses))
	if err != nil {
		return nil, err
	}
	faculty, err := readFaculty(filepath.Join(dir, Tables.Faculty), log)
	if err != nil {
		return nil, err
	}
	rooms, err := readRooms(filepath.Join(dir, Tables.Rooms))
	if err != nil {
		return nil, err
	}
	enrollRows, hasProgramID, err := readEnrollments(filepath.Join(dir, Tables.Enrollments))
	if err != nil {
		return nil, err
	}
	programs, err := readPrograms(filepath.Join(dir, Tables.Programs))
	if err != nil {
		return nil, err
	}
	prefs, err := readPreferences(filepath.Join(dir, Tables.Preferences), courses, faculty, rooms, log)
	if err != nil {
		return nil, err
	}

	var scheduled []model.Course
	for _, c := range courses {
		if c.Type.Scheduled() {
			scheduled = append(scheduled, c)
		}
	}

	res := &Result{
		StudentRegistrations: make(map[string][]string),
	}

	if hasProgramID {
		log.Info("program_id column found; using pre-defined groups (k-means bypassed)")
		knownCourses := make(map[string]struct{}, len(courses))
		for _, c := range courses {
			knownCourses[c.Code] = struct{}{}
		}
		programMap := make(map[string][]string, len(programs))
		for pid, codes := range programs {
			for _, c := range codes {
				if _, ok := knownCourses[c]; !ok {
					return nil, &model.ValidationError{Field: "programs.course_codes", Reason: fmt.Sprintf("program %s lists unknown course %q", pid, c)}
				}
			}
			programMap[pid] = codes
		}
		registrations := make(map[string][]string)
		for _, row := range enrollRows {
			if codes, ok := programMap[row.programID]; ok {
				registrations[row.studentID] = codes
			}
		}
		res.ProgramGroups = model.NewStudentGroups(programMap)
		res.StudentRegistrations = registrations
		res.KMeansNeeded = false
	} else {
		log.Info("program_id column not found; data will be clustered with k-means")
		registrations := make(map[string][]string)
		for _, row := range enrollRows {
			registrations[row.studentID] = append(registrations[row.studentID], row.courseCode)
		}
		res.StudentRegistrations = registrations
		res.KMeansNeeded = true
	}

	enrollments := make(map[string]int)
	for _, codes := range res.StudentRegistrations {
		for _, c := range codes {
			enrollments[c]++
		}
	}

	facultyMap := make(map[string]model.Faculty, len(faculty))
	facultyOrder := make([]string, 0, len(faculty))
	for _, f := range faculty {
		facultyMap[f.ID] = f
		facultyOrder = append(facultyOrder, f.ID)
	}
	roomMap := make(map[string]model.Room, len(rooms))
	roomOrder := make([]string, 0, len(rooms))
	for _, r := range rooms {
		roomMap[r.ID] = r
		roomOrder = append(roomOrder, r.ID)
	}
	courseMap := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		courseMap[c.Code] = c
	}

	res.Data = model.UniversityData{
		AllCourses:        courseMap,
		ScheduledCourses:  scheduled,
		CourseEnrollments: enrollments,
		Faculty:           facultyMap,
		Rooms:             roomMap,
		Preferences:       prefs,
		ProfessorOrder:    facultyOrder,
		RoomOrder:         roomOrder,
	}
	return res, nil
}

func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	return r, f, nil
}

func readAll(path string) ([]map[string]string, error) {
	r, f, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func readCourses(path string) ([]model.Course, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(rows))
	out := make([]model.Course, 0, len(rows))
	for _, row := range rows {
		code := row["course_code"]
		if _, dup := seen[code]; dup {
			return nil, &model.ValidationError{Field: "courses.code", Reason: fmt.Sprintf("duplicate course code %q", code)}
		}
		seen[code] = struct{}{}
		out = append(out, model.Course{Code: code, Type: parseCourseType(row["type"])})
	}
	return out, nil
}

// parseCourseType canonicalizes a CSV type cell (any mix of case, e.g.
// "lecture" or "LECTURE") to the model's capitalized CourseType constants.
// An unrecognized value passes through unchanged; since it is neither
// Internship nor Fieldwork, Scheduled() reports true for it.
func parseCourseType(raw string) model.CourseType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lecture":
		return model.Lecture
	case "lab":
		return model.Lab
	case "internship":
		return model.Internship
	case "fieldwork":
		return model.Fieldwork
	case "seminar":
		return model.Seminar
	case "studio":
		return model.Studio
	default:
		return model.CourseType(raw)
	}
}

func readFaculty(path string, log telemetry.Logger) ([]model.Faculty, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.Faculty, 0, len(rows))
	for _, row := range rows {
		expertise := make(map[string]struct{})
		for _, code := range strings.Split(row["expertise"], ",") {
			code = strings.TrimSpace(code)
			if code != "" {
				expertise[code] = struct{}{}
			}
		}
		availability := make(map[model.Day]model.Availability)
		// availability column format: "Mon:unavailable;Tue:available". A
		// missing day defaults to available (SPEC_FULL.md §9); any value other
		// than the literal "unavailable" is treated as available, with a
		// warning so a malformed CSV cell can't silently veto a day.
		for _, pair := range strings.Split(row["availability"], ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				log.Warnf("faculty %s: malformed availability entry %q, ignoring", row["faculty_id"], pair)
				continue
			}
			day := model.Day(strings.TrimSpace(kv[0]))
			status := strings.ToLower(strings.TrimSpace(kv[1]))
			if status == string(model.Unavailable) {
				availability[day] = model.Unavailable
			} else if status != string(model.Available) {
				log.Warnf("faculty %s: unrecognized availability value %q for %s, defaulting to available", row["faculty_id"], kv[1], day)
			}
		}
		out = append(out, model.Faculty{ID: row["faculty_id"], Expertise: expertise, Availability: availability})
	}
	return out, nil
}

func readRooms(path string) ([]model.Room, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	out := make([]model.Room, 0, len(rows))
	for _, row := range rows {
		cap, err := strconv.Atoi(strings.TrimSpace(row["capacity"]))
		if err != nil {
			return nil, &model.ValidationError{Field: "rooms.capacity", Reason: fmt.Sprintf("room %s: %v", row["room_id"], err)}
		}
		if cap < 0 {
			return nil, &model.ValidationError{Field: "rooms.capacity", Reason: fmt.Sprintf("room %s has negative capacity %d", row["room_id"], cap)}
		}
		out = append(out, model.Room{ID: row["room_id"], Capacity: cap})
	}
	return out, nil
}

type enrollmentRow struct {
	studentID  string
	programID  string
	courseCode string
}

func readEnrollments(path string) ([]enrollmentRow, bool, error) {
	r, f, err := openCSV(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	header := rows[0]
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	_, hasProgramID := col["program_id"]

	out := make([]enrollmentRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		out = append(out, enrollmentRow{
			studentID:  get("student_id"),
			programID:  get("program_id"),
			courseCode: get("course_code"),
		})
	}
	return out, hasProgramID, nil
}

func readPrograms(path string) (map[string][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return map[string][]string{}, nil
	}
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(rows))
	for _, row := range rows {
		var codes []string
		for _, c := range strings.Split(row["course_codes"], ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				codes = append(codes, c)
			}
		}
		out[row["program_id"]] = codes
	}
	return out, nil
}

func readPreferences(path string, courses []model.Course, faculty []model.Faculty, rooms []model.Room, log telemetry.Logger) (model.Preferences, error) {
	prefs := model.Preferences{
		Professors: make(map[string]model.ProfessorPreference),
		Courses:    make(map[string]model.CoursePreference),
	}
	if _, err := os.Stat(path); err != nil {
		return prefs, nil
	}

	knownCourses := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		knownCourses[c.Code] = struct{}{}
	}
	knownFaculty := make(map[string]struct{}, len(faculty))
	for _, f := range faculty {
		knownFaculty[f.ID] = struct{}{}
	}
	knownRooms := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		knownRooms[r.ID] = struct{}{}
	}

	rows, err := readAll(path)
	if err != nil {
		return prefs, err
	}
	for _, row := range rows {
		targetType := row["target_type"]
		targetID := row["target_id"]
		ruleType := row["rule_type"]
		value := row["value"]

		switch targetType {
		case "professor":
			if _, ok := knownFaculty[targetID]; !ok {
				log.Warnf("preferences: dropping rule for unknown professor %q", targetID)
				continue
			}
			entry := prefs.Professors[targetID]
			if entry.DislikesTimeslot == nil {
				entry.DislikesTimeslot = make(map[model.Timeslot]struct{})
				entry.LikesTimeslot = make(map[model.Timeslot]struct{})
			}
			ts := model.Timeslot(value)
			switch ruleType {
			case "dislikes_timeslot":
				if !ts.Valid() {
					log.Warnf("preferences: dropping dislikes_timeslot rule with unknown timeslot %q", value)
					continue
				}
				entry.DislikesTimeslot[ts] = struct{}{}
			case "likes_timeslot":
				if !ts.Valid() {
					log.Warnf("preferences: dropping likes_timeslot rule with unknown timeslot %q", value)
					continue
				}
				entry.LikesTimeslot[ts] = struct{}{}
			default:
				log.Warnf("preferences: dropping unrecognized rule kind %q for professor %q", ruleType, targetID)
				continue
			}
			prefs.Professors[targetID] = entry
		case "course":
			if _, ok := knownCourses[targetID]; !ok {
				log.Warnf("preferences: dropping rule for unknown course %q", targetID)
				continue
			}
			entry := prefs.Courses[targetID]
			if entry.PrefersRoom == nil {
				entry.PrefersRoom = make(map[string]struct{})
			}
			switch ruleType {
			case "prefers_room":
				if _, ok := knownRooms[value]; !ok {
					log.Warnf("preferences: dropping prefers_room rule with unknown room %q", value)
					continue
				}
				entry.PrefersRoom[value] = struct{}{}
			default:
				log.Warnf("preferences: dropping unrecognized rule kind %q for course %q", ruleType, targetID)
				continue
			}
			prefs.Courses[targetID] = entry
		default:
			log.Warnf("preferences: dropping rule with unrecognized target_type %q", targetType)
		}
	}
	return prefs, nil
}
