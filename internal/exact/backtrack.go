package exact

import (
	"context"

	"github.com/campusforge/timetable/internal/model"
)

// search is a constraint-satisfaction backtracking solver with forward
// checking and minimum-remaining-values (MRV) variable ordering. It plays
// the role the distilled spec assigns to a boolean CP model: the same
// expertise/capacity/availability pruning happens at domain-construction
// time (buildDomains), and propagation after each assignment shrinks every
// other unassigned course's domain the way the CP solver's clash
// constraints would cut the search tree.
type search struct {
	data   model.UniversityData
	groups model.StudentGroups

	groupsByCourse map[string][]string
	courses        []string

	assignment map[string]candidate
	best       map[string]candidate
	bestObj    float64
	haveBest   bool

	report *model.InfeasibilityReport
}

func newSearch(data model.UniversityData, groups model.StudentGroups) *search {
	s := &search{
		data:           data,
		groups:         groups,
		groupsByCourse: make(map[string][]string),
		assignment:     make(map[string]candidate),
	}
	for _, c := range data.ScheduledCourses {
		s.courses = append(s.courses, c.Code)
	}
	for gid, g := range groups {
		for course := range g.Courses {
			s.groupsByCourse[course] = append(s.groupsByCourse[course], gid)
		}
	}
	return s
}

// run drives the backtracking search to completion or until ctx is done. It
// returns true if at least one feasible assignment was found, in which case
// s.best holds the best-objective complete assignment seen.
func (s *search) run(ctx context.Context, domains map[string][]candidate) bool {
	domains = cloneDomains(domains)
	s.backtrack(ctx, domains)
	return s.haveBest
}

func (s *search) backtrack(ctx context.Context, domains map[string][]candidate) {
	if ctx.Err() != nil {
		return
	}

	course, ok := s.selectUnassigned(domains)
	if !ok {
		// Complete assignment: score its objective and keep it if it's the
		// best complete assignment seen so far (bounded best-improvement,
		// see DESIGN.md — this is the backtracking stand-in for the CP
		// model's Maximize step).
		obj := s.objective()
		if !s.haveBest || obj > s.bestObj {
			s.haveBest = true
			s.bestObj = obj
			s.best = make(map[string]candidate, len(s.assignment))
			for k, v := range s.assignment {
				s.best[k] = v
			}
		}
		return
	}

	values := domains[course]
	if len(values) == 0 {
		if s.report == nil {
			s.report = &model.InfeasibilityReport{CourseCode: course, Reason: "no (professor, room, timeslot) candidate survives expertise/capacity/availability pruning and prior assignments"}
		}
		return
	}

	for _, v := range values {
		if ctx.Err() != nil {
			return
		}
		s.assignment[course] = v
		pruned, wiped := s.forwardCheck(course, v, domains)
		if !wiped {
			s.backtrack(ctx, pruned)
		} else if s.report == nil {
			s.report = &model.InfeasibilityReport{CourseCode: course, Reason: "assigning this course emptied another course's remaining domain"}
		}
		delete(s.assignment, course)

		// The loop goes on to the remaining values after a complete
		// assignment has been found, so the search keeps enumerating
		// complete assignments (keeping the best objective seen) until the
		// budget expires or the search space is exhausted.
		if s.haveBest && ctx.Err() != nil {
			return
		}
	}
}

// selectUnassigned picks the unassigned course with the smallest remaining
// domain (MRV), breaking ties by course code for determinism.
func (s *search) selectUnassigned(domains map[string][]candidate) (string, bool) {
	chosen := ""
	chosenSize := -1
	for _, c := range s.courses {
		if _, done := s.assignment[c]; done {
			continue
		}
		size := len(domains[c])
		if chosenSize == -1 || size < chosenSize || (size == chosenSize && c < chosen) {
			chosen, chosenSize = c, size
		}
	}
	return chosen, chosen != ""
}

// forwardCheck removes, from every unassigned course's domain, any
// candidate that would clash with (course, v): same professor at the same
// timeslot, same room at the same timeslot, or — when course and the other
// course share a student group — the same timeslot. Returns the pruned
// domain map and whether any unassigned course's domain was wiped out.
func (s *search) forwardCheck(course string, v candidate, domains map[string][]candidate) (map[string][]candidate, bool) {
	pruned := cloneDomains(domains)
	pruned[course] = []candidate{v}

	sharesGroupWith := func(other string) bool {
		for _, gid := range s.groupsByCourse[course] {
			if s.groups[gid].Has(other) {
				return true
			}
		}
		return false
	}

	for _, other := range s.courses {
		if other == course {
			continue
		}
		if _, done := s.assignment[other]; done {
			continue
		}
		values := pruned[other]
		filtered := values[:0:0]
		groupClash := sharesGroupWith(other)
		for _, cand := range values {
			if cand.Timeslot == v.Timeslot {
				if cand.ProfID == v.ProfID {
					continue
				}
				if cand.RoomID == v.RoomID {
					continue
				}
				if groupClash {
					continue
				}
			}
			filtered = append(filtered, cand)
		}
		pruned[other] = filtered
		if len(filtered) == 0 {
			return nil, true
		}
	}
	return pruned, false
}

// objective returns the linear preference score of the current complete
// assignment: -10 per disliked timeslot, +5 per preferred room, summed.
func (s *search) objective() float64 {
	var total float64
	for course, v := range s.assignment {
		if s.data.Preferences.Dislikes(v.ProfID, v.Timeslot) {
			total -= 10
		}
		if s.data.Preferences.PrefersRoom(course, v.RoomID) {
			total += 5
		}
	}
	return total
}

func cloneDomains(domains map[string][]candidate) map[string][]candidate {
	out := make(map[string][]candidate, len(domains))
	for k, v := range domains {
		cp := make([]candidate, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
