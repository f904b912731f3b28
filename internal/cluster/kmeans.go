// Package cluster discovers student cohorts from raw registrations when no
// program_id column tells us the groups directly. It is the Go counterpart
// of the original source's analyzer.py, which calls scikit-learn's KMeans
// over a student x course incidence matrix.
//
// No clustering library with a verifiable API turns up in the reference
// corpus (gonum appears in two example repos' go.mod files, but neither
// exercises a clustering package, so its surface here can't be grounded);
// Lloyd's algorithm is a few dozen lines and is implemented directly against
// the standard library instead of risking an unverified dependency (see
// DESIGN.md).
package cluster

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/campusforge/timetable/internal/model"
)

// DefaultK mirrors analyzer.py's optimal_k=3 default.
const DefaultK = 3

// DefaultSeed mirrors analyzer.py's random_state=42.
const DefaultSeed = 42

const maxIterations = 100

// Discover runs k-means (k = min(targetK, len(registrations))) over the
// binary student x course incidence matrix built from registrations, and
// returns one StudentGroup per non-empty cluster, named "Cluster_N". A
// cluster's CourseList is every course taken by at least one member,
// matching analyzer.py's `courses_in_cluster` filter.
//
// Fewer than two students skips clustering entirely and assigns each
// student their own singleton cluster, exactly as analyzer.py does.
func Discover(registrations map[string][]string, targetK int, seed int64) model.StudentGroups {
	if len(registrations) == 0 {
		return model.StudentGroups{}
	}
	if targetK <= 0 {
		targetK = DefaultK
	}

	students := make([]string, 0, len(registrations))
	for s := range registrations {
		students = append(students, s)
	}
	sort.Strings(students)

	courseSet := make(map[string]struct{})
	for _, courses := range registrations {
		for _, c := range courses {
			courseSet[c] = struct{}{}
		}
	}
	courses := make([]string, 0, len(courseSet))
	for c := range courseSet {
		courses = append(courses, c)
	}
	sort.Strings(courses)
	courseIndex := make(map[string]int, len(courses))
	for i, c := range courses {
		courseIndex[c] = i
	}

	vectors := make([][]float64, len(students))
	for i, s := range students {
		v := make([]float64, len(courses))
		for _, c := range registrations[s] {
			v[courseIndex[c]] = 1
		}
		vectors[i] = v
	}

	var assignment []int
	if len(students) < 2 {
		assignment = make([]int, len(students))
		for i := range assignment {
			assignment[i] = i
		}
	} else {
		k := targetK
		if k > len(students) {
			k = len(students)
		}
		assignment = lloyd(vectors, k, seed)
	}

	clusterCourses := make(map[int]map[string]struct{})
	for i, cid := range assignment {
		set, ok := clusterCourses[cid]
		if !ok {
			set = make(map[string]struct{})
			clusterCourses[cid] = set
		}
		for _, c := range registrations[students[i]] {
			set[c] = struct{}{}
		}
	}

	groupInput := make(map[string][]string, len(clusterCourses))
	ids := make([]int, 0, len(clusterCourses))
	for cid := range clusterCourses {
		ids = append(ids, cid)
	}
	sort.Ints(ids)
	for _, cid := range ids {
		set := clusterCourses[cid]
		list := make([]string, 0, len(set))
		for _, c := range courses {
			if _, ok := set[c]; ok {
				list = append(list, c)
			}
		}
		groupInput[clusterName(cid)] = list
	}
	return model.NewStudentGroups(groupInput)
}

func clusterName(id int) string {
	return "Cluster_" + strconv.Itoa(id)
}

// lloyd runs k-means with k-means++-style seeding replaced by a simple
// deterministic random pick (grounded on scikit-learn's random_state
// reproducibility, not its seeding algorithm) and Lloyd's iteration to
// convergence or maxIterations.
func lloyd(vectors [][]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	dims := len(vectors[0])

	centroids := make([][]float64, k)
	perm := rng.Perm(len(vectors))
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	assignment := make([]int, len(vectors))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best, bestDist := 0, sqDist(v, centroids[0])
			for c := 1; c < k; c++ {
				d := sqDist(v, centroids[c])
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, v := range vectors {
			c := assignment[i]
			counts[c]++
			for d := 0; d < dims; d++ {
				sums[c][d] += v[d]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dims; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}
	return assignment
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
