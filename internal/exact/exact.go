// Package exact implements the exact (complete) timetabling solver: a
// pruned decision-variable model solved by constraint-propagation
// backtracking under a wall-clock budget. See DESIGN.md for why this
// reimplements the CP model as backtracking + forward checking rather than
// calling into a constraint-programming or MILP library: none exists in the
// reference corpus this module was built from.
package exact

import (
	"context"
	"time"

	"github.com/campusforge/timetable/internal/model"
)

// Solve runs the exact solver with the given wall-clock budget. It returns
// a complete Timetable (one session per scheduled course) when a feasible
// assignment was found before the budget expired, or nil plus a best-effort
// InfeasibilityReport otherwise.
//
// Solve does not model student-group gap compactness; that is the genetic
// solver's concern alone.
func Solve(ctx context.Context, data model.UniversityData, groups model.StudentGroups, timeLimit time.Duration) (model.Timetable, *model.InfeasibilityReport) {
	if len(data.ScheduledCourses) == 0 {
		return model.Timetable{}, nil
	}

	budgetCtx := ctx
	if timeLimit > 0 {
		var cancel context.CancelFunc
		budgetCtx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	domains := buildDomains(data)
	s := newSearch(data, groups)
	if !s.run(budgetCtx, domains) {
		return nil, s.report
	}

	tt := make(model.Timetable, 0, len(s.best))
	for _, c := range s.courses {
		v := s.best[c]
		tt = append(tt, model.Session{CourseCode: c, ProfID: v.ProfID, RoomID: v.RoomID, Timeslot: v.Timeslot})
	}
	return tt, nil
}
