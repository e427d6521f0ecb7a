package heuristic

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var ErrGenomeLength = fmt.Errorf("genome must have exactly %d weights", NumFeatures)
var ErrUnknownPreset = errors.New("unknown genome preset")

// Genome is a weight per Feature. It is a value type; operations that
// change weights return a new Genome.
type Genome struct {
	w [NumFeatures]int
}

// NewGenome builds a genome from exactly NumFeatures weights in Feature
// order.
func NewGenome(weights ...int) (Genome, error) {
	var g Genome
	if len(weights) != int(NumFeatures) {
		return g, fmt.Errorf("%w: got %d", ErrGenomeLength, len(weights))
	}
	copy(g.w[:], weights)
	return g, nil
}

// MustGenome is NewGenome for literals known to be well formed.
func MustGenome(weights ...int) Genome {
	g, err := NewGenome(weights...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g Genome) Weight(f Feature) int {
	return g.w[f]
}

// Weights returns a copy of the weight vector.
func (g Genome) Weights() []int {
	out := make([]int, NumFeatures)
	copy(out, g.w[:])
	return out
}

// With returns a copy of g with feature f set to v.
func (g Genome) With(f Feature, v int) Genome {
	g.w[f] = v
	return g
}

func (g Genome) String() string {
	parts := make([]string, NumFeatures)
	for i, v := range g.w {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// ID is a short fingerprint of the weights, used to name contestants in
// logs.
func (g Genome) ID() string {
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64String(g.String())))
}

func (g Genome) MarshalYAML() (interface{}, error) {
	return g.Weights(), nil
}

func (g *Genome) UnmarshalYAML(value *yaml.Node) error {
	var ws []int
	if err := value.Decode(&ws); err != nil {
		return err
	}
	ng, err := NewGenome(ws...)
	if err != nil {
		return err
	}
	*g = ng
	return nil
}

var (
	DefaultGenome = MustGenome(10, -86, -30, 25, 0, 0, 0, 0, 30000, -30000, -200, 200, -190, 10, 50, -50)

	// Genomes found by earlier evolution runs.
	Evo1  = MustGenome(92, 20, -75, 2, 48, 68, -100, -45, -67, -4, -54, 31, 83, 73, 99, -81)
	Evo2  = MustGenome(91, -97, 8, 29, 76, 1, -94, 36, 9, 22, 41, 88, 92, -75, -64, -44)
	Evo6  = MustGenome(92, -97, 8, 29, 76, 1, -63, 36, 9, -4, -54, 88, 83, 73, 99, -44)
	Evo7  = MustGenome(91, -97, 8, 29, 50, 1, -63, 36, 9, -4, -54, 36, 53, 73, 99, -81)
	Evo8a = MustGenome(91, -97, 8, 29, 76, 1, -63, 36, 9, -4, -54, 15, 83, 73, 99, -81)
	Evo8b = MustGenome(94, -97, 8, 29, 96, 22, -45, 27, 9, 12, -54, -17, 108, 51, 80, -81)
	Evo8c = MustGenome(91, -97, 8, 29, 76, 1, 36, 36, 9, -4, -54, 36, 53, 73, 99, -44)
	Evo8d = MustGenome(91, -97, 8, 29, 76, 1, -94, 36, 9, 22, -54, 88, 92, -75, 86, -81)
)

var presets = map[string]Genome{
	"default": DefaultGenome,
	"evo1":    Evo1,
	"evo2":    Evo2,
	"evo6":    Evo6,
	"evo7":    Evo7,
	"evo8a":   Evo8a,
	"evo8b":   Evo8b,
	"evo8c":   Evo8c,
	"evo8d":   Evo8d,
}

// Preset looks up a named genome.
func Preset(name string) (Genome, error) {
	g, ok := presets[strings.ToLower(name)]
	if !ok {
		return Genome{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return g, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}
