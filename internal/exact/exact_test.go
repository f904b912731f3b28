package exact

import (
	"context"
	"testing"
	"time"

	"github.com/campusforge/timetable/internal/evaluator"
	"github.com/campusforge/timetable/internal/model"
)

func noAvailability() map[model.Day]model.Availability {
	return map[model.Day]model.Availability{}
}

// S1 "Trivial single": 1 course, 1 prof, 1 room, 1 group. Exact solver
// places a single session; score >= 1000.
func TestS1TrivialSingle(t *testing.T) {
	data := model.UniversityData{
		ScheduledCourses:  []model.Course{{Code: "CS101", Type: model.Lecture}},
		CourseEnrollments: map[string]int{"CS101": 10},
		Faculty: map[string]model.Faculty{
			"ada": {ID: "ada", Expertise: map[string]struct{}{"CS101": {}}, Availability: noAvailability()},
		},
		Rooms: map[string]model.Room{"R1": {ID: "R1", Capacity: 20}},
	}
	groups := model.NewStudentGroups(map[string][]string{"G1": {"CS101"}})

	tt, report := Solve(context.Background(), data, groups, time.Second)
	if tt == nil {
		t.Fatalf("expected a feasible timetable, got infeasibility: %v", report)
	}
	if len(tt) != 1 {
		t.Fatalf("expected exactly one session, got %d", len(tt))
	}

	score, _ := evaluator.New(data, groups).Evaluate(tt)
	if score < evaluator.HardFeasibleThreshold {
		t.Errorf("expected score >= 1000, got %v", score)
	}
}

// S2 "Capacity infeasible": enrollment exceeds the only room's capacity.
// Exact solver must return no feasible assignment.
func TestS2CapacityInfeasible(t *testing.T) {
	data := model.UniversityData{
		ScheduledCourses:  []model.Course{{Code: "CS101", Type: model.Lecture}},
		CourseEnrollments: map[string]int{"CS101": 30},
		Faculty: map[string]model.Faculty{
			"ada": {ID: "ada", Expertise: map[string]struct{}{"CS101": {}}, Availability: noAvailability()},
		},
		Rooms: map[string]model.Room{"R1": {ID: "R1", Capacity: 20}},
	}
	groups := model.NewStudentGroups(nil)

	tt, report := Solve(context.Background(), data, groups, time.Second)
	if tt != nil {
		t.Fatalf("expected infeasibility, got timetable %v", tt)
	}
	if report == nil {
		t.Error("expected a best-effort infeasibility report")
	}
}

// S3 "Expertise forces prof": CS101 can only be taught by ada, MA101 only by
// euler. Any feasible solution assigns CS101->ada, MA101->euler.
func TestS3ExpertiseForcesProf(t *testing.T) {
	data := model.UniversityData{
		ScheduledCourses: []model.Course{
			{Code: "CS101", Type: model.Lecture},
			{Code: "MA101", Type: model.Lecture},
		},
		CourseEnrollments: map[string]int{"CS101": 10, "MA101": 10},
		Faculty: map[string]model.Faculty{
			"ada":   {ID: "ada", Expertise: map[string]struct{}{"CS101": {}}, Availability: noAvailability()},
			"euler": {ID: "euler", Expertise: map[string]struct{}{"MA101": {}}, Availability: noAvailability()},
		},
		Rooms: map[string]model.Room{"R1": {ID: "R1", Capacity: 20}},
	}
	groups := model.NewStudentGroups(nil)

	tt, report := Solve(context.Background(), data, groups, time.Second)
	if tt == nil {
		t.Fatalf("expected a feasible timetable, got infeasibility: %v", report)
	}
	for _, s := range tt {
		switch s.CourseCode {
		case "CS101":
			if s.ProfID != "ada" {
				t.Errorf("expected CS101 taught by ada, got %s", s.ProfID)
			}
		case "MA101":
			if s.ProfID != "euler" {
				t.Errorf("expected MA101 taught by euler, got %s", s.ProfID)
			}
		}
	}
}

// S4 "Professor clash": two courses only teachable by ada, one room. ada has
// no unavailable day, so all 48 timeslots are open. The solver must place
// the two sessions in distinct timeslots.
func TestS4ProfessorClash(t *testing.T) {
	data := model.UniversityData{
		ScheduledCourses: []model.Course{
			{Code: "CS101", Type: model.Lecture},
			{Code: "CS102", Type: model.Lecture},
		},
		CourseEnrollments: map[string]int{"CS101": 10, "CS102": 10},
		Faculty: map[string]model.Faculty{
			"ada": {ID: "ada", Expertise: map[string]struct{}{"CS101": {}, "CS102": {}}, Availability: noAvailability()},
		},
		Rooms: map[string]model.Room{"R1": {ID: "R1", Capacity: 20}},
	}
	groups := model.NewStudentGroups(nil)

	tt, report := Solve(context.Background(), data, groups, time.Second)
	if tt == nil {
		t.Fatalf("expected a feasible timetable, got infeasibility: %v", report)
	}
	if tt[0].Timeslot == tt[1].Timeslot {
		t.Errorf("expected distinct timeslots for the two sessions, both got %s", tt[0].Timeslot)
	}
}

// S5 "Availability": ada is unavailable on Monday. No feasible session for
// her only course has a Monday timeslot.
func TestS5Availability(t *testing.T) {
	data := model.UniversityData{
		ScheduledCourses:  []model.Course{{Code: "CS101", Type: model.Lecture}},
		CourseEnrollments: map[string]int{"CS101": 10},
		Faculty: map[string]model.Faculty{
			"ada": {ID: "ada", Expertise: map[string]struct{}{"CS101": {}}, Availability: map[model.Day]model.Availability{model.Mon: model.Unavailable}},
		},
		Rooms: map[string]model.Room{"R1": {ID: "R1", Capacity: 20}},
	}
	groups := model.NewStudentGroups(nil)

	tt, report := Solve(context.Background(), data, groups, time.Second)
	if tt == nil {
		t.Fatalf("expected a feasible timetable, got infeasibility: %v", report)
	}
	if tt[0].Timeslot.Day() == model.Mon {
		t.Errorf("expected a non-Monday timeslot, got %s", tt[0].Timeslot)
	}
}

func TestSolveEmptyScheduledCourses(t *testing.T) {
	data := model.UniversityData{}
	groups := model.NewStudentGroups(nil)
	tt, report := Solve(context.Background(), data, groups, time.Second)
	if tt == nil || len(tt) != 0 {
		t.Errorf("expected an empty, successful timetable, got %v (report %v)", tt, report)
	}
}
