// Package heuristic scores Reversi positions. A position is reduced to a
// fixed vector of features, and a Genome of integer weights projects that
// vector onto a single score.
package heuristic

// Feature indexes the evaluation vector. Features come in own/opponent
// pairs, own first.
type Feature int

const (
	OwnMobility Feature = iota
	OppMobility
	OwnBorder
	OppBorder
	OwnPieces
	OppPieces
	OwnStable
	OppStable
	OwnCorners
	OppCorners
	OwnXCells
	OppXCells
	OwnCCells
	OppCCells
	OwnABCells
	OppABCells
	NumFeatures
)

var featureNames = [NumFeatures]string{
	"own-mobility", "opp-mobility",
	"own-border", "opp-border",
	"own-pieces", "opp-pieces",
	"own-stable", "opp-stable",
	"own-corners", "opp-corners",
	"own-x-cells", "opp-x-cells",
	"own-c-cells", "opp-c-cells",
	"own-ab-cells", "opp-ab-cells",
}

func (f Feature) String() string {
	if f < 0 || f >= NumFeatures {
		return "unknown"
	}
	return featureNames[f]
}
