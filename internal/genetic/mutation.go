package genetic

import (
	"math/rand"

	"github.com/campusforge/timetable/internal/model"
)

// twoPointCrossover swaps the gene segment between two random cut points of
// a and b in place, the bag-of-sessions equivalent of DEAP's cxTwoPoint
// (the operator the original ga_solver.py registers as "mate"). Both slices
// must have equal, non-zero length.
func twoPointCrossover(a, b model.Timetable, rng *rand.Rand) {
	n := len(a)
	if n < 2 {
		return
	}
	p1 := rng.Intn(n)
	p2 := rng.Intn(n)
	if p1 > p2 {
		p1, p2 = p2, p1
	}
	for i := p1; i < p2; i++ {
		a[i], b[i] = b[i], a[i]
	}
}
