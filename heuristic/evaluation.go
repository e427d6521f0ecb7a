package heuristic

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
)

// TerminalScale multiplies the disc differential of a finished position,
// putting every finished position out of reach of any weighted sum.
const TerminalScale = 10_000_000

// Evaluation is the feature vector of a board seen from one color.
type Evaluation struct {
	color    board.Color
	features [NumFeatures]int
	gameEnd  bool
}

// Evaluate computes every feature of b from the point of view of color.
func Evaluate(b *board.Board, color board.Color) Evaluation {
	opp := color.Opposite()
	e := Evaluation{color: color}
	f := &e.features

	f[OwnMobility] = b.Mobility(color)
	f[OppMobility] = b.Mobility(opp)
	e.gameEnd = f[OwnMobility] == 0 && f[OppMobility] == 0

	border := b.Border()
	f[OwnBorder] = b.CountIn(border, color)
	f[OppBorder] = b.CountIn(border, opp)
	f[OwnPieces] = b.Count(color)
	f[OppPieces] = b.Count(opp)
	f[OwnStable] = b.StableCount(color)
	f[OppStable] = b.StableCount(opp)

	corners := b.CellsOfType(board.TypeCorner)
	xcells := b.CellsOfType(board.TypeX)
	ccells := b.CellsOfType(board.TypeC)
	abcells := b.CellsOfType(board.TypeA).Union(b.CellsOfType(board.TypeB))
	f[OwnCorners] = b.CountIn(corners, color)
	f[OppCorners] = b.CountIn(corners, opp)
	f[OwnXCells] = b.CountIn(xcells, color)
	f[OppXCells] = b.CountIn(xcells, opp)
	f[OwnCCells] = b.CountIn(ccells, color)
	f[OppCCells] = b.CountIn(ccells, opp)
	f[OwnABCells] = b.CountIn(abcells, color)
	f[OppABCells] = b.CountIn(abcells, opp)
	return e
}

func (e Evaluation) Feature(f Feature) int { return e.features[f] }
func (e Evaluation) Color() board.Color    { return e.color }

// GameEnd is true when neither side has a legal move.
func (e Evaluation) GameEnd() bool { return e.gameEnd }

// Value projects the features onto g. A finished position ignores the
// weights and scores the disc differential times TerminalScale.
func (e Evaluation) Value(g Genome) int {
	if e.gameEnd {
		return TerminalScale * (e.features[OwnPieces] - e.features[OppPieces])
	}
	v := 0
	for i, x := range e.features {
		v += x * g.w[i]
	}
	return v
}

func (e Evaluation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "evaluation for %s", e.color)
	if e.gameEnd {
		sb.WriteString(" (game over)")
	}
	sb.WriteString("\n")
	for f := OwnMobility; f < NumFeatures; f += 2 {
		name := strings.TrimPrefix(f.String(), "own-")
		fmt.Fprintf(&sb, "  %-10s %3d %3d\n", name, e.features[f], e.features[f+1])
	}
	return sb.String()
}

// MoveValue is the one-ply score of a candidate move.
type MoveValue struct {
	Cell  board.Cell
	Value int
}

// EvaluateAllMoves plays every legal move for color on a scratch copy of
// b and scores the result with g. Moves come back in board order.
func EvaluateAllMoves(b *board.Board, color board.Color, g Genome) []MoveValue {
	moves := b.ValidMoves(color)
	scratch := b.Copy()
	return lo.Map(moves, func(c board.Cell, _ int) MoveValue {
		if err := scratch.CopyFrom(b); err != nil {
			panic(err)
		}
		scratch.MakeMove(c, color)
		return MoveValue{Cell: c, Value: Evaluate(scratch, color).Value(g)}
	})
}

// BestMoveValue returns the highest scored entry; the earliest wins ties.
func BestMoveValue(mvs []MoveValue) (MoveValue, bool) {
	if len(mvs) == 0 {
		return MoveValue{}, false
	}
	return lo.MaxBy(mvs, func(a, b MoveValue) bool {
		return a.Value > b.Value
	}), true
}
