package projection

import (
	"testing"

	"github.com/campusforge/timetable/internal/model"
)

func TestByProfessor(t *testing.T) {
	faculty := map[string]model.Faculty{
		"ada":   {ID: "ada"},
		"euler": {ID: "euler"},
	}
	master := model.Timetable{
		{CourseCode: "A", ProfID: "ada", RoomID: "R1", Timeslot: "Mon_10AM"},
		{CourseCode: "B", ProfID: "euler", RoomID: "R1", Timeslot: "Mon_11AM"},
		{CourseCode: "C", ProfID: "ada", RoomID: "R2", Timeslot: "Tue_10AM"},
	}

	out := ByProfessor(master, faculty)
	if len(out) != 2 {
		t.Fatalf("expected an entry for every known professor, got %d", len(out))
	}
	for prof, sessions := range out {
		for _, s := range sessions {
			if s.ProfID != prof {
				t.Errorf("session %+v leaked into %s's schedule", s, prof)
			}
		}
	}
	if len(out["ada"]) != 2 {
		t.Errorf("expected ada to have 2 sessions, got %d", len(out["ada"]))
	}
}

func TestByProgram(t *testing.T) {
	groups := model.NewStudentGroups(map[string][]string{
		"G1": {"A", "B", "Z"},
	})
	master := model.Timetable{
		{CourseCode: "A", ProfID: "ada", RoomID: "R1", Timeslot: "Mon_10AM"},
		{CourseCode: "A", ProfID: "ada", RoomID: "R1", Timeslot: "Mon_11AM"}, // duplicate: first wins
		{CourseCode: "B", ProfID: "euler", RoomID: "R1", Timeslot: "Tue_10AM"},
	}

	out := ByProgram(master, groups)
	sessions := out["G1"]
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions (Z absent, A deduped), got %d: %+v", len(sessions), sessions)
	}
	if sessions[0].CourseCode != "A" || sessions[0].Timeslot != "Mon_10AM" {
		t.Errorf("expected first-wins session for A, got %+v", sessions[0])
	}
	for _, s := range sessions {
		if !groups["G1"].Has(s.CourseCode) {
			t.Errorf("session %+v does not belong to group G1's courses", s)
		}
	}
}

func TestByProgramEmptyGroupsIsTotal(t *testing.T) {
	groups := model.NewStudentGroups(map[string][]string{"G1": {}, "G2": {"X"}})
	out := ByProgram(nil, groups)
	if _, ok := out["G1"]; !ok {
		t.Error("expected G1 present even with no sessions")
	}
	if _, ok := out["G2"]; !ok {
		t.Error("expected G2 present even with no sessions")
	}
}
