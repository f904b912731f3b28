// Package tabu implements the short-memory local-search post-optimizer that
// polishes the genetic solver's best individual: swap-neighborhood tabu
// search over the bag-of-sessions representation.
package tabu

import (
	"hash/fnv"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/campusforge/timetable/internal/model"
)

const (
	neighborhoodSize = 20
	tabuMemorySize   = 10
	maxIterations    = 200
)

// FitnessFunc scores a candidate timetable; tabu search only needs the
// score, never the conflict indices the genetic solver consumes.
type FitnessFunc func(model.Timetable) float64

// Config tunes the optional parallel-evaluation path. UniversityData is
// read-only during a solve (SPEC_FULL.md §5), so scoring the up-to-20
// neighbors of a step concurrently is safe; it is off by default to match
// the single-threaded contract the distilled spec describes, and is purely
// an internal performance detail — the walk it produces is identical either
// way since every neighbor is still scored before the best is picked.
type Config struct {
	Parallel bool
	RNG      *rand.Rand
}

// Search runs the tabu walk from initial for up to maxIterations steps, or
// until no non-tabu neighbor exists. It returns the best-scoring complete
// timetable seen, including initial itself if nothing ever improved on it.
func Search(initial model.Timetable, fitness FitnessFunc, cfg Config) model.Timetable {
	rng := cfg.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	current := initial.Clone()
	best := initial.Clone()
	bestScore := fitness(best)

	tabuList := newTabuQueue(tabuMemorySize)
	tabuList.push(hashTimetable(current))

	for iter := 0; iter < maxIterations; iter++ {
		if len(current) < 2 {
			break
		}
		neighbors := generateNeighborhood(current, neighborhoodSize, rng)

		bestNeighbor, bestNeighborScore, found := bestNonTabu(neighbors, fitness, tabuList, cfg.Parallel)
		if !found {
			break
		}

		current = bestNeighbor
		tabuList.push(hashTimetable(current))

		if bestNeighborScore > bestScore {
			best = current.Clone()
			bestScore = bestNeighborScore
		}
	}

	return best
}

// generateNeighborhood produces up to size neighbors of tt, each obtained
// by swapping two distinct, uniformly chosen gene positions — swapping full
// sessions, not a single field, so the bag-of-sessions multiset is
// preserved across the walk.
func generateNeighborhood(tt model.Timetable, size int, rng *rand.Rand) []model.Timetable {
	if len(tt) < 2 {
		return nil
	}
	neighbors := make([]model.Timetable, 0, size)
	for k := 0; k < size; k++ {
		n := tt.Clone()
		i := rng.Intn(len(n))
		j := rng.Intn(len(n))
		for j == i {
			j = rng.Intn(len(n))
		}
		n[i], n[j] = n[j], n[i]
		neighbors = append(neighbors, n)
	}
	return neighbors
}

// bestNonTabu scores every neighbor not present in tabuList and returns the
// highest-scoring one.
func bestNonTabu(neighbors []model.Timetable, fitness FitnessFunc, tabuList *tabuQueue, parallel bool) (model.Timetable, float64, bool) {
	type scored struct {
		tt    model.Timetable
		score float64
		tabu  bool
	}
	results := make([]scored, len(neighbors))

	score := func(i int) error {
		h := hashTimetable(neighbors[i])
		if tabuList.contains(h) {
			results[i] = scored{tabu: true}
			return nil
		}
		results[i] = scored{tt: neighbors[i], score: fitness(neighbors[i])}
		return nil
	}

	if parallel {
		var eg errgroup.Group
		for i := range neighbors {
			i := i
			eg.Go(func() error { return score(i) })
		}
		_ = eg.Wait() // score never returns an error
	} else {
		for i := range neighbors {
			_ = score(i)
		}
	}

	best := -1
	for i, r := range results {
		if r.tabu {
			continue
		}
		if best == -1 || r.score > results[best].score {
			best = i
		}
	}
	if best == -1 {
		return nil, 0, false
	}
	return results[best].tt, results[best].score, true
}

// tabuQueue is a bounded FIFO of recently visited timetable fingerprints.
type tabuQueue struct {
	order []uint64
	seen  map[uint64]struct{}
	cap   int
}

func newTabuQueue(capacity int) *tabuQueue {
	return &tabuQueue{seen: make(map[uint64]struct{}, capacity), cap: capacity}
}

func (q *tabuQueue) push(h uint64) {
	if _, exists := q.seen[h]; exists {
		return
	}
	q.order = append(q.order, h)
	q.seen[h] = struct{}{}
	if len(q.order) > q.cap {
		oldest := q.order[0]
		q.order = q.order[1:]
		delete(q.seen, oldest)
	}
}

func (q *tabuQueue) contains(h uint64) bool {
	_, ok := q.seen[h]
	return ok
}

// hashTimetable encodes tt as a canonical byte sequence and folds it into a
// single FNV-1a digest, giving the tabu memory a cheap, allocation-light
// fingerprint for an ordered sequence of (course, prof, room, timeslot)
// tuples.
func hashTimetable(tt model.Timetable) uint64 {
	h := fnv.New64a()
	for _, s := range tt {
		h.Write([]byte(s.CourseCode))
		h.Write([]byte{0})
		h.Write([]byte(s.ProfID))
		h.Write([]byte{0})
		h.Write([]byte(s.RoomID))
		h.Write([]byte{0})
		h.Write([]byte(s.Timeslot))
		h.Write([]byte{0xff})
	}
	return h.Sum64()
}
