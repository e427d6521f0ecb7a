package heuristic

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/board"
)

func boardFromRows(t *testing.T, rows ...string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(len(rows), len(rows))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetFromRows(rows); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestOpeningFeatures(t *testing.T) {
	e := Evaluate(board.NewStandardBoard(), board.Black)
	expected := map[Feature]int{
		OwnMobility: 4, OppMobility: 4,
		OwnBorder: 2, OppBorder: 2,
		OwnPieces: 2, OppPieces: 2,
		OwnStable: 0, OwnCorners: 0, OwnXCells: 0,
	}
	for f, v := range expected {
		assert.Equal(t, v, e.Feature(f), f.String())
	}
	assert.False(t, e.GameEnd())
	assert.Equal(t, 10*4-86*4-30*2+25*2, e.Value(DefaultGenome))
}

func TestEdgeCellFeatures(t *testing.T) {
	is := is.New(t)
	b := boardFromRows(t,
		"XOX.....",
		"XX......",
		"O.......",
		"...OX...",
		"...XO...",
		"........",
		"......O.",
		".......O",
	)
	e := Evaluate(b, board.White)
	is.Equal(e.Feature(OwnCorners), 1)
	is.Equal(e.Feature(OppCorners), 1)
	is.Equal(e.Feature(OwnXCells), 1)
	is.Equal(e.Feature(OppXCells), 1)
	is.Equal(e.Feature(OwnCCells), 1)  // b1
	is.Equal(e.Feature(OppCCells), 1)  // a2
	is.Equal(e.Feature(OwnABCells), 1) // a3
	is.Equal(e.Feature(OppABCells), 1) // c1
}

func TestTerminalScoreDominates(t *testing.T) {
	is := is.New(t)
	bigWin := boardFromRows(t,
		"XXXX",
		"XXXX",
		"XXXX",
		"XXOO",
	)
	smallWin := boardFromRows(t,
		"XXXX",
		"XXXX",
		"XXOO",
		"OOOO",
	)
	adversarial := MustGenome(-100, 100, 100, -100, -100, 100, -100, 100,
		-100, 100, 100, -100, 100, -100, -100, 100)

	for _, g := range []Genome{DefaultGenome, adversarial, Evo8b} {
		big := Evaluate(bigWin, board.Black)
		small := Evaluate(smallWin, board.Black)
		is.True(big.GameEnd())
		is.True(big.Value(g) > small.Value(g))
		is.Equal(small.Value(g), TerminalScale*4)
		// and from white's side the order flips
		is.True(Evaluate(bigWin, board.White).Value(g) < Evaluate(smallWin, board.White).Value(g))
	}
}

func TestNewGenomeLength(t *testing.T) {
	is := is.New(t)
	_, err := NewGenome(1, 2, 3)
	is.True(errors.Is(err, ErrGenomeLength))
	g, err := NewGenome(DefaultGenome.Weights()...)
	is.NoErr(err)
	is.Equal(g, DefaultGenome)
}

func TestGenomeIsAValue(t *testing.T) {
	is := is.New(t)
	ws := DefaultGenome.Weights()
	ws[0] = 999
	is.Equal(DefaultGenome.Weight(OwnMobility), 10)

	g := DefaultGenome.With(OwnMobility, 11)
	is.Equal(g.Weight(OwnMobility), 11)
	is.Equal(DefaultGenome.Weight(OwnMobility), 10)
	is.True(g.ID() != DefaultGenome.ID())
}

func TestGenomeYAML(t *testing.T) {
	is := is.New(t)
	out, err := yaml.Marshal([]Genome{Evo1})
	is.NoErr(err)

	var back []Genome
	is.NoErr(yaml.Unmarshal(out, &back))
	is.Equal(back, []Genome{Evo1})

	var short Genome
	err = yaml.Unmarshal([]byte("[1, 2, 3]"), &short)
	is.True(errors.Is(err, ErrGenomeLength))
}

func TestPreset(t *testing.T) {
	is := is.New(t)
	g, err := Preset("EVO8C")
	is.NoErr(err)
	is.Equal(g, Evo8c)
	_, err = Preset("nope")
	is.True(errors.Is(err, ErrUnknownPreset))
}

func TestEvaluateAllMoves(t *testing.T) {
	is := is.New(t)
	b := board.NewStandardBoard()
	mvs := EvaluateAllMoves(b, board.Black, DefaultGenome)
	is.Equal(len(mvs), 4)
	// the opening is symmetric
	for _, mv := range mvs {
		is.Equal(mv.Value, mvs[0].Value)
	}
	best, ok := BestMoveValue(mvs)
	is.True(ok)
	is.Equal(best.Cell, board.Cell{Row: 2, Col: 3})
	// the source board is untouched
	is.Equal(b.Count(board.Black), 2)
}
