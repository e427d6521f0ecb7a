// Package genetic holds the operators that breed evaluator genomes:
// mutation, crossover and fully random genomes.
package genetic

import (
	"sort"

	"github.com/domino14/reversi/heuristic"
)

const (
	// Weights of random genomes are drawn from [DomainMin, DomainMax).
	DomainMin = -100
	DomainMax = 100
)

// Source is the randomness the operators draw from. *frand.RNG
// satisfies it.
type Source interface {
	Intn(n int) int
}

// RandomInt returns a value in [lo, hi). It returns lo when hi <= lo.
func RandomInt(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo)
}

// RandomList draws n values in [lo, hi).
func RandomList(src Source, n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = RandomInt(src, lo, hi)
	}
	return out
}

// RandomPoints returns a sorted list of feature indexes, possibly with
// repeats, whose length is drawn from [1, NumFeatures).
func RandomPoints(src Source) []int {
	n := RandomInt(src, 1, int(heuristic.NumFeatures))
	pts := RandomList(src, n, 0, int(heuristic.NumFeatures))
	sort.Ints(pts)
	return pts
}

// MutateAt adds a delta drawn from [minDelta, maxDelta) to the weight at
// each point. A point listed twice is perturbed twice.
func MutateAt(src Source, g heuristic.Genome, points []int, minDelta, maxDelta int) heuristic.Genome {
	for _, p := range points {
		f := heuristic.Feature(p)
		g = g.With(f, g.Weight(f)+RandomInt(src, minDelta, maxDelta))
	}
	return g
}

// RandomMutations perturbs a random set of weights by up to a quarter
// of the weight domain in either direction.
func RandomMutations(src Source, g heuristic.Genome) heuristic.Genome {
	return MutateAt(src, g, RandomPoints(src), DomainMin/4, DomainMax/4)
}

// Crossover builds a child that starts copying from a and switches
// parent at every cut point. Several cut points at the same index switch
// only once.
func Crossover(a, b heuristic.Genome, points []int) heuristic.Genome {
	child := a
	fromA := true
	z := 0
	for f := heuristic.Feature(0); f < heuristic.NumFeatures; f++ {
		flipped := false
		for z < len(points) && int(f) >= points[z] {
			if !flipped {
				fromA = !fromA
				flipped = true
			}
			z++
		}
		if fromA {
			child = child.With(f, a.Weight(f))
		} else {
			child = child.With(f, b.Weight(f))
		}
	}
	return child
}

// RandomCrossover is Crossover with random cut points.
func RandomCrossover(src Source, a, b heuristic.Genome) heuristic.Genome {
	return Crossover(a, b, RandomPoints(src))
}

// FullyRandomGenome draws every weight from the domain.
func FullyRandomGenome(src Source) heuristic.Genome {
	return heuristic.MustGenome(RandomList(src, int(heuristic.NumFeatures), DomainMin, DomainMax)...)
}
