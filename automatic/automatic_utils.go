// Package automatic runs computer-vs-computer games: single matches,
// round-robin tournaments between evaluator genomes, and the generation
// loop that evolves those genomes.
package automatic

import (
	"errors"
	"expvar"
)

var (
	MatchCounter *expvar.Int
	IsPlaying    *expvar.Int
)

var (
	ErrBadPopulationShape = errors.New("population shape does not add up")
	ErrAlreadyPlaying     = errors.New("a tournament is already running")
	ErrMatchIncomplete    = errors.New("match stopped before the game ended")
)

func init() {
	MatchCounter = expvar.NewInt("matchCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}
