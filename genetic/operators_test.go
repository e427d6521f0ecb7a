package genetic

import (
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/reversi/heuristic"
)

var (
	parentA = heuristic.MustGenome(1, 8, 4, 3, 7, 9, 2, 5, 1, 3, 2, 6, 7, 4, 4, 6)
	parentB = heuristic.MustGenome(7, 9, 4, 5, 5, 5, 8, 6, 3, 7, 8, 4, 4, 5, 6, 9)
)

// fixedSource replays a list of values, each reduced modulo n.
type fixedSource struct {
	vals []int
	i    int
}

func (f *fixedSource) Intn(n int) int {
	v := f.vals[f.i%len(f.vals)] % n
	f.i++
	return v
}

func TestCrossover(t *testing.T) {
	cases := []struct {
		name   string
		points []int
		want   heuristic.Genome
	}{
		{"cut at 0 takes all of b", []int{0}, parentB},
		{"single cut", []int{4},
			heuristic.MustGenome(1, 8, 4, 3, 5, 5, 8, 6, 3, 7, 8, 4, 4, 5, 6, 9)},
		{"two cuts", []int{2, 5},
			heuristic.MustGenome(1, 8, 4, 5, 5, 9, 2, 5, 1, 3, 2, 6, 7, 4, 4, 6)},
		{"repeated cut flips once", []int{3, 3},
			heuristic.MustGenome(1, 8, 4, 5, 5, 5, 8, 6, 3, 7, 8, 4, 4, 5, 6, 9)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Crossover(parentA, parentB, tc.points), tc.name)
	}
}

func TestRandomIntRange(t *testing.T) {
	is := is.New(t)
	rng := NewRNG("range")
	for i := 0; i < 1000; i++ {
		v := RandomInt(rng, -25, 25)
		is.True(v >= -25 && v < 25)
	}
	is.Equal(RandomInt(rng, 5, 5), 5)
}

func TestRandomPoints(t *testing.T) {
	is := is.New(t)
	rng := NewRNG("points")
	for i := 0; i < 200; i++ {
		pts := RandomPoints(rng)
		is.True(len(pts) >= 1 && len(pts) < int(heuristic.NumFeatures))
		is.True(sort.IntsAreSorted(pts))
		for _, p := range pts {
			is.True(p >= 0 && p < int(heuristic.NumFeatures))
		}
	}
}

func TestMutateAt(t *testing.T) {
	is := is.New(t)
	src := &fixedSource{vals: []int{30}}
	// every delta is -25 + 30%50 = 5
	g := MutateAt(src, parentA, []int{0, 2, 2}, -25, 25)
	is.Equal(g.Weight(heuristic.Feature(0)), 6)
	is.Equal(g.Weight(heuristic.Feature(1)), 8)
	is.Equal(g.Weight(heuristic.Feature(2)), 14)
	// the parent is untouched
	is.Equal(parentA.Weight(heuristic.Feature(0)), 1)
}

func TestFullyRandomGenome(t *testing.T) {
	is := is.New(t)
	rng := NewRNG("random")
	g := FullyRandomGenome(rng)
	for _, w := range g.Weights() {
		is.True(w >= DomainMin && w < DomainMax)
	}
}

func TestSeededRNGIsReproducible(t *testing.T) {
	is := is.New(t)
	a := FullyRandomGenome(NewRNG("abc"))
	b := FullyRandomGenome(NewRNG("abc"))
	c := FullyRandomGenome(NewRNG("abd"))
	is.Equal(a, b)
	is.True(a != c)
}
