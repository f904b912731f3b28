package genetic

import (
	"math/rand"

	"github.com/MaxHalford/eaopt"
	"github.com/campusforge/timetable/internal/model"
)

// fitnessFunc scores a candidate timetable. It is the genetic solver's only
// dependency on internal/evaluator, kept as a function value so genome.go
// never has to import evaluator's concrete type.
type fitnessFunc func(model.Timetable) (float64, map[int]struct{})

// genome is the GA's bag-of-sessions individual. It implements
// eaopt.Genome the same way the teacher library's own `candidate` type
// does: Clone/Crossover/Mutate/Evaluate delegate to plain functions over
// the wrapped Timetable. eaopt.GA.Minimize expects lower-is-better fitness,
// so Evaluate returns the negated evaluator score.
type genome struct {
	sessions model.Timetable
	// conflicts holds the session indices the last Evaluate call flagged as
	// participating in a hard-constraint violation. Mutate consumes this
	// immediately after Evaluate runs, matching the single-owner
	// conflict-tracking side channel described in the spec.
	conflicts []int

	pool *genePool
}

// genePool holds the candidate alphabets (courses, professors, rooms,
// timeslots) and the fitness function, shared by every genome in a run.
type genePool struct {
	courses   []string
	profs     []string
	rooms     []string
	timeslots []model.Timeslot
	fitness   fitnessFunc
}

func (p *genePool) randomSession(rng *rand.Rand) model.Session {
	return model.Session{
		CourseCode: p.courses[rng.Intn(len(p.courses))],
		ProfID:     p.profs[rng.Intn(len(p.profs))],
		RoomID:     p.rooms[rng.Intn(len(p.rooms))],
		Timeslot:   p.timeslots[rng.Intn(len(p.timeslots))],
	}
}

// factory builds the eaopt.GenomeFactory for an unseeded run: each gene is
// drawn independently, course included, matching the distilled spec's
// bag-of-sessions seeding rule.
func (p *genePool) factory(rng *rand.Rand) eaopt.Genome {
	sessions := make(model.Timetable, len(p.courses))
	for i := range sessions {
		sessions[i] = p.randomSession(rng)
	}
	return &genome{sessions: sessions, pool: p}
}

// Evaluate implements eaopt.Genome.
func (g *genome) Evaluate() (float64, error) {
	score, conflicts := g.pool.fitness(g.sessions)
	g.conflicts = g.conflicts[:0]
	for idx := range conflicts {
		g.conflicts = append(g.conflicts, idx)
	}
	return -score, nil
}

// Mutate implements eaopt.Genome: conflict-directed, single-field timeslot
// repair. If the individual has no recorded conflicts, mutation is a no-op
// — random mutation on an already-satisfied timetable would only destroy
// constraints it took the search effort to satisfy.
func (g *genome) Mutate(rng *rand.Rand) {
	if len(g.conflicts) == 0 {
		return
	}
	idx := g.conflicts[rng.Intn(len(g.conflicts))]
	s := g.sessions[idx]
	s.Timeslot = g.pool.timeslots[rng.Intn(len(g.pool.timeslots))]
	g.sessions[idx] = s
}

// Crossover implements eaopt.Genome: two-point crossover over the raw
// session slice. Because the genotype is a bag of sessions rather than a
// course-indexed array, this swaps whole genes (course, prof, room,
// timeslot) between the two parents, never just one field.
func (g *genome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	o := other.(*genome)
	twoPointCrossover(g.sessions, o.sessions, rng)
}

// Clone implements eaopt.Genome.
func (g *genome) Clone() eaopt.Genome {
	clone := &genome{
		sessions: g.sessions.Clone(),
		pool:     g.pool,
	}
	clone.conflicts = append([]int(nil), g.conflicts...)
	return clone
}
