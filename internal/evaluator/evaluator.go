// Package evaluator scores a candidate Timetable against the hard and soft
// constraints of the timetabling problem. Scoring is a pure function of the
// timetable and the university data it is checked against: the same input
// always yields the same (score, conflicts) pair.
package evaluator

import (
	"github.com/campusforge/timetable/internal/model"
)

const (
	baseline = 1000.0

	expertisePenalty    = -1000.0
	capacityPenalty     = -1000.0
	availabilityPenalty = -1000.0
	professorClash      = -100.0
	roomClash           = -100.0
	groupClash          = -100.0
	dislikePenalty      = -10.0
	likeReward          = 5.0
	gapPenaltyPerSlot   = -5.0

	// HardFeasibleThreshold is the user-visible acceptance threshold: a
	// timetable scoring at or above this value fired no hard-constraint
	// violation.
	HardFeasibleThreshold = baseline
)

// Evaluator holds the precomputed lookup tables the scoring loop needs so
// that Evaluate runs in O(len(timetable)) regardless of university size.
type Evaluator struct {
	data   model.UniversityData
	groups model.StudentGroups

	// groupsByCourse indexes, for each course code, every group that
	// requires it — avoids the O(groups) scan per session that a naive
	// translation of the original nested loop would do.
	groupsByCourse map[string][]string
}

// New builds an Evaluator for a fixed (data, groups) pair. The returned
// value is safe to reuse across many Evaluate calls, including concurrent
// ones, since it never mutates its lookup tables after construction.
func New(data model.UniversityData, groups model.StudentGroups) *Evaluator {
	e := &Evaluator{
		data:           data,
		groups:         groups,
		groupsByCourse: make(map[string][]string),
	}
	for gid, g := range groups {
		for course := range g.Courses {
			e.groupsByCourse[course] = append(e.groupsByCourse[course], gid)
		}
	}
	return e
}

// Evaluate scores tt and returns the set of session indices that
// participated in any hard-constraint violation. All conditions are
// evaluated over the full timetable before returning, so iteration order
// never affects the final score.
func (e *Evaluator) Evaluate(tt model.Timetable) (float64, map[int]struct{}) {
	score := baseline
	conflicts := make(map[int]struct{})

	type slotKey struct {
		id string
		ts model.Timeslot
	}
	professorSeen := make(map[slotKey]struct{}, len(tt))
	roomSeen := make(map[slotKey]struct{}, len(tt))
	groupSeen := make(map[string]struct{}, len(tt)*2)

	type dayTimes struct {
		times map[model.Day][]int
	}
	groupDays := make(map[string]*dayTimes)
	for gid := range e.groups {
		dt := &dayTimes{times: make(map[model.Day][]int)}
		groupDays[gid] = dt
	}

	for i, s := range tt {
		prof, profOK := e.data.Faculty[s.ProfID]
		if !profOK || !prof.Teaches(s.CourseCode) {
			score += expertisePenalty
			conflicts[i] = struct{}{}
		}

		room, roomOK := e.data.Rooms[s.RoomID]
		if !roomOK || e.data.CourseEnrollments[s.CourseCode] > room.Capacity {
			score += capacityPenalty
			conflicts[i] = struct{}{}
		}

		day := s.Timeslot.Day()
		if profOK && !prof.AvailableOn(day) {
			score += availabilityPenalty
			conflicts[i] = struct{}{}
		}

		profKey := slotKey{id: s.ProfID, ts: s.Timeslot}
		if _, seen := professorSeen[profKey]; seen {
			score += professorClash
			conflicts[i] = struct{}{}
		} else {
			professorSeen[profKey] = struct{}{}
		}

		roomKey := slotKey{id: s.RoomID, ts: s.Timeslot}
		if _, seen := roomSeen[roomKey]; seen {
			score += roomClash
			conflicts[i] = struct{}{}
		} else {
			roomSeen[roomKey] = struct{}{}
		}

		ordinal := s.Timeslot.Ordinal()
		for _, gid := range e.groupsByCourse[s.CourseCode] {
			groupKey := gid + "|" + string(s.Timeslot)
			if _, seen := groupSeen[groupKey]; seen {
				score += groupClash
				conflicts[i] = struct{}{}
			} else {
				groupSeen[groupKey] = struct{}{}
			}
			if ordinal > 0 {
				groupDays[gid].times[day] = append(groupDays[gid].times[day], ordinal)
			}
		}

		if e.data.Preferences.Dislikes(s.ProfID, s.Timeslot) {
			score += dislikePenalty
		}
		if e.data.Preferences.Likes(s.ProfID, s.Timeslot) {
			score += likeReward
		}
	}

	// Post-loop compactness pass: for every student-group-day, penalize
	// gaps between consecutive sorted ordinals. Applied across every day
	// in the lexicon (Mon..Sat) — see DESIGN.md for the documented
	// divergence from the original source, which only scanned Mon-Wed.
	for _, dt := range groupDays {
		for _, times := range dt.times {
			if len(times) < 2 {
				continue
			}
			sorted := append([]int(nil), times...)
			insertionSort(sorted)
			for i := 0; i < len(sorted)-1; i++ {
				gap := sorted[i+1] - sorted[i]
				if gap > 1 {
					score += gapPenaltyPerSlot * float64(gap-1)
				}
			}
		}
	}

	return score, conflicts
}

// insertionSort sorts a small slice of ordinals in place. A per-day slice
// holds one ordinal per session of the group on that day, so it is small
// and an allocation-free insertion sort suits this hot path.
func insertionSort(xs []int) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}
