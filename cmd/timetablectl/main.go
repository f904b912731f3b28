// Command timetablectl generates a university timetable from a directory of
// CSV tables, using the exact, genetic, or hybrid solving strategy.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/campusforge/timetable/internal/cluster"
	"github.com/campusforge/timetable/internal/config"
	"github.com/campusforge/timetable/internal/loader"
	"github.com/campusforge/timetable/internal/model"
	"github.com/campusforge/timetable/internal/telemetry"
	"github.com/campusforge/timetable/solver"
)

func main() {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "timetablectl",
		Short: "Generate and inspect university timetables",
		Long:  "timetablectl loads course, faculty, room, and enrollment data and runs the exact, genetic, or hybrid solver to produce a conflict-free schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	config.BindFlags(root, cfg)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log telemetry.Logger
	if cfg.JSONLog {
		log = telemetry.NewJSON(os.Stdout)
	} else {
		log = telemetry.Default()
	}

	log.Infof("loading university data from %s", cfg.DataDir)
	res, err := loader.LoadDir(cfg.DataDir, log)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	groups := res.ProgramGroups
	if res.KMeansNeeded {
		log.Info("running k-means analyzer over student registrations")
		groups = cluster.Discover(res.StudentRegistrations, cluster.DefaultK, cfg.Seed)
	} else {
		log.Info("using pre-defined student groups (k-means bypassed)")
	}

	log.Infof("running %s solver", strings.ToUpper(cfg.Solver))
	opts := solver.Options{
		GeneticSeed: cfg.Seed,
		Parallel:    cfg.Parallel,
		TabuPolish:  !cfg.NoTabuPolish,
		Log:         log,
	}

	start := time.Now()
	pkg, err := solve(config.Strategy(cfg.Solver), res.Data, groups, cfg.TimeLimit, opts)
	elapsed := time.Since(start)
	log.Infof("solver finished in %s", elapsed)

	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}
	if pkg == nil {
		fmt.Println("--- No final solution was generated. ---")
		return fmt.Errorf("no feasible timetable found")
	}

	if cfg.Debug {
		pp.Println(pkg.Master)
	}

	printProfessorTimetables(pkg)
	printProgramTimetables(pkg)
	return nil
}

func solve(strategy config.Strategy, data model.UniversityData, groups model.StudentGroups, timeLimit time.Duration, opts solver.Options) (*model.SolutionPackage, error) {
	switch strategy {
	case config.StrategyGenetic:
		return solver.SolveGenetic(data, groups, nil, opts)
	case config.StrategyExact:
		pkg, report, err := solver.SolveExact(context.Background(), data, groups, timeLimit)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			// The infeasibility reason travels back to run() as this error.
			// run() returns it before reaching its "--- No final solution
			// was generated. ---" line, so that line is not printed on this
			// path; the returned error is what makes the process exit
			// non-zero.
			return nil, fmt.Errorf("%s", report.String())
		}
		return pkg, nil
	case config.StrategyHybrid:
		return solver.SolveHybrid(context.Background(), data, groups, timeLimit, opts)
	default:
		return nil, fmt.Errorf("unrecognized solver strategy %q", strategy)
	}
}

func printProfessorTimetables(pkg *model.SolutionPackage) {
	fmt.Println("\n--- Professor Timetables ---")
	profs := make([]string, 0, len(pkg.ProfessorTimetables))
	for p := range pkg.ProfessorTimetables {
		profs = append(profs, p)
	}
	sort.Strings(profs)
	for _, prof := range profs {
		fmt.Printf("\nSchedule for %s:\n", prof)
		printFormattedSchedule(pkg.ProfessorTimetables[prof])
	}
}

func printProgramTimetables(pkg *model.SolutionPackage) {
	fmt.Println("\n--- Program Timetables ---")
	programs := make([]string, 0, len(pkg.ProgramTimetables))
	for p := range pkg.ProgramTimetables {
		programs = append(programs, p)
	}
	sort.Strings(programs)
	for _, program := range programs {
		fmt.Printf("\nSchedule for %s:\n", program)
		printFormattedSchedule(pkg.ProgramTimetables[program])
	}
}

var dayOrder = map[model.Day]int{
	model.Mon: 1, model.Tue: 2, model.Wed: 3, model.Thu: 4, model.Fri: 5, model.Sat: 6,
}

// printFormattedSchedule prints sessions grouped under a day header, the
// same shape main.py's print_formatted_schedule produces.
func printFormattedSchedule(sessions []model.Session) {
	if len(sessions) == 0 {
		fmt.Println("  - No classes scheduled.")
		return
	}
	sorted := append([]model.Session(nil), sessions...)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := sorted[i].Timeslot.Day(), sorted[j].Timeslot.Day()
		if dayOrder[di] != dayOrder[dj] {
			return dayOrder[di] < dayOrder[dj]
		}
		return sorted[i].Timeslot < sorted[j].Timeslot
	})

	lastDay := model.Day("")
	for _, s := range sorted {
		day := s.Timeslot.Day()
		if day != lastDay {
			fmt.Printf("  --- %s ---\n", day)
			lastDay = day
		}
		fmt.Printf("    %s: %s by %s in %s\n", s.Timeslot, s.CourseCode, s.ProfID, s.RoomID)
	}
}
