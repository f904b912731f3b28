// Package solver is the facade tying the exact, genetic, and tabu solvers
// together into the three strategies SPEC_FULL.md exposes: exact, genetic,
// and hybrid. It is the one place that knows how to turn a bare
// model.Timetable into a full model.SolutionPackage.
package solver

import (
	"context"
	"time"

	"github.com/campusforge/timetable/internal/evaluator"
	"github.com/campusforge/timetable/internal/exact"
	"github.com/campusforge/timetable/internal/genetic"
	"github.com/campusforge/timetable/internal/model"
	"github.com/campusforge/timetable/internal/projection"
	"github.com/campusforge/timetable/internal/tabu"
	"github.com/campusforge/timetable/internal/telemetry"
)

// Options configures every strategy below. TabuPolish enables the tabu
// polish stage; its zero value is off, so callers set it explicitly
// (cmd/timetablectl sets it on unless --no-tabu-polish is given).
type Options struct {
	GeneticSeed int64
	Parallel    bool
	TabuPolish  bool
	Log         telemetry.Logger
}

func (o Options) logger() telemetry.Logger {
	if o.Log != nil {
		return o.Log
	}
	return telemetry.Discard()
}

func (o Options) geneticOptions() []genetic.Option {
	opts := []genetic.Option{genetic.WithParallel(o.Parallel)}
	if o.GeneticSeed != 0 {
		opts = append(opts, genetic.WithSeed(o.GeneticSeed))
	}
	return opts
}

// SolveExact runs the backtracking exact solver only. It returns a nil
// package and a non-nil InfeasibilityReport if no feasible timetable exists
// within timeLimit.
func SolveExact(ctx context.Context, data model.UniversityData, groups model.StudentGroups, timeLimit time.Duration) (*model.SolutionPackage, *model.InfeasibilityReport, error) {
	tt, report := exact.Solve(ctx, data, groups, timeLimit)
	if tt == nil {
		return nil, report, nil
	}
	return assemble(data, groups, tt), nil, nil
}

// SolveGenetic runs the genetic solver only, optionally seeded from an
// existing timetable (e.g. the exact solver's result, or a prior run's best
// individual).
func SolveGenetic(data model.UniversityData, groups model.StudentGroups, seed *model.Timetable, opts Options) (*model.SolutionPackage, error) {
	eval := evaluator.New(data, groups)
	tt, err := genetic.Solve(data, groups, seed, eval.Evaluate, opts.geneticOptions()...)
	if err != nil {
		return nil, err
	}
	if opts.TabuPolish {
		tt = polish(tt, eval, opts)
	}
	return assemble(data, groups, tt), nil
}

// SolveHybrid runs the exact solver for up to exactBudget and, if it found a
// feasible timetable, hands that timetable to the genetic solver as a seed.
// If the exact solver finds no feasible assignment within the budget, the
// genetic solver runs unseeded, matching SPEC_FULL.md's documented fallback.
func SolveHybrid(ctx context.Context, data model.UniversityData, groups model.StudentGroups, exactBudget time.Duration, opts Options) (*model.SolutionPackage, error) {
	log := opts.logger()
	exactTT, report := exact.Solve(ctx, data, groups, exactBudget)
	var seed *model.Timetable
	if exactTT != nil {
		log.Infof("hybrid: exact stage found a candidate, seeding the genetic stage")
		seed = &exactTT
	} else {
		log.Infof("hybrid: exact stage found nothing within budget (%s); falling back to an unseeded genetic search", report.String())
	}

	eval := evaluator.New(data, groups)
	tt, err := genetic.Solve(data, groups, seed, eval.Evaluate, opts.geneticOptions()...)
	if err != nil {
		return nil, err
	}
	if opts.TabuPolish {
		tt = polish(tt, eval, opts)
	}
	return assemble(data, groups, tt), nil
}

func polish(tt model.Timetable, eval *evaluator.Evaluator, opts Options) model.Timetable {
	fitness := func(candidate model.Timetable) float64 {
		score, _ := eval.Evaluate(candidate)
		return score
	}
	return tabu.Search(tt, fitness, tabu.Config{Parallel: opts.Parallel})
}

func assemble(data model.UniversityData, groups model.StudentGroups, master model.Timetable) *model.SolutionPackage {
	return &model.SolutionPackage{
		Master:              master,
		ProfessorTimetables: projection.ByProfessor(master, data.Faculty),
		ProgramTimetables:   projection.ByProgram(master, groups),
	}
}
