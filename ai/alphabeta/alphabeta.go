// Package alphabeta implements the computer player's move search:
// depth-limited minimax with alpha-beta pruning over copies of the game
// state.
package alphabeta

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            if value ≥ β then
                break (* β cut-off *)
            α := max(α, value)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            if value ≤ α then
                break (* α cut-off *)
            β := min(β, value)
        return value
**/

const DefaultDepth = 6

var (
	ErrAborted  = errors.New("search aborted")
	ErrGameOver = errors.New("game is over; nothing to search")
)

// bounds is the alpha-beta window. It is passed by value, so every
// recursive call works on its own copy. An inactive window means plain
// minimax.
type bounds struct {
	alpha  int
	beta   int
	active bool
}

func fullWindow() bounds {
	return bounds{alpha: math.MinInt, beta: math.MaxInt, active: true}
}

// Solver searches for the best move for the side to move. A Solver runs
// one search at a time; only Abort may be called concurrently with
// BestMove.
type Solver struct {
	genome         heuristic.Genome
	maxDepth       int
	dynamicDepth   bool
	policy         DepthPolicy
	disablePruning bool

	abortMu sync.Mutex
	aborted bool

	// per-search
	searchDepth     int
	maximizingColor board.Color
	totalNodes      int
	rootNode        *GameNode
}

// NewSolver builds a solver that scores leaves with g and takes its
// depth settings from cfg.
func NewSolver(cfg *config.Config, g heuristic.Genome) *Solver {
	s := &Solver{
		genome:   g,
		maxDepth: DefaultDepth,
		policy:   DefaultDepthPolicy(),
	}
	if cfg != nil {
		s.maxDepth = cfg.GetInt(config.ConfigSearchDepth)
		s.dynamicDepth = cfg.GetBool(config.ConfigDynamicDepth)
		s.policy = DepthPolicy{
			Shallow:       cfg.GetInt(config.ConfigDepthShallow),
			Opening:       cfg.GetInt(config.ConfigDepthOpening),
			Midgame:       cfg.GetInt(config.ConfigDepthMidgame),
			Endgame:       cfg.GetInt(config.ConfigDepthEndgame),
			MidgamePieces: cfg.GetInt(config.ConfigDepthMidgamePieces),
			EndgamePieces: cfg.GetInt(config.ConfigDepthEndgamePieces),
			InnerNum:      cfg.GetInt(config.ConfigDepthInnerNum),
			InnerDen:      cfg.GetInt(config.ConfigDepthInnerDen),
		}
	}
	return s
}

func (s *Solver) Genome() heuristic.Genome { return s.genome }
func (s *Solver) MaxDepth() int            { return s.maxDepth }

// SetMaxDepth fixes the search depth and turns off the dynamic policy.
func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = d
	s.dynamicDepth = false
}

func (s *Solver) SetDynamicDepth(on bool) {
	s.dynamicDepth = on
}

func (s *Solver) SetDepthPolicy(p DepthPolicy) {
	s.policy = p
}

// SetPruningDisabled turns the search into plain minimax.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// Abort asks a running search to stop. The search notices at the next
// node it visits and returns ErrAborted. Abort is safe to call from any
// goroutine, any number of times.
func (s *Solver) Abort() {
	s.abortMu.Lock()
	s.aborted = true
	s.abortMu.Unlock()
}

func (s *Solver) isAborted() bool {
	s.abortMu.Lock()
	defer s.abortMu.Unlock()
	return s.aborted
}

func (s *Solver) clearAbort() {
	s.abortMu.Lock()
	s.aborted = false
	s.abortMu.Unlock()
}

// Nodes is the number of nodes visited by the last search.
func (s *Solver) Nodes() int { return s.totalNodes }

// SearchDepth is the depth used by the last search.
func (s *Solver) SearchDepth() int { return s.searchDepth }

// RootNode is the root of the last search.
func (s *Solver) RootNode() *GameNode { return s.rootNode }

// PrincipalVariation is the sequence of moves the last search expects,
// starting with the move it returned.
func (s *Solver) PrincipalVariation() []board.Cell {
	var seq []board.Cell
	if s.rootNode == nil {
		return seq
	}
	for n := s.rootNode.next; n != nil; n = n.next {
		seq = append(seq, n.move)
	}
	return seq
}

// DepthFor returns the depth a search of st would use.
func (s *Solver) DepthFor(st *game.State) int {
	if s.dynamicDepth {
		return s.policy.Depth(st.Board())
	}
	return s.maxDepth
}

// BestMove searches st and returns the best move for the side to move.
// st is never modified. If the search is aborted, through Abort or ctx,
// it returns ErrAborted and no move.
func (s *Solver) BestMove(ctx context.Context, st *game.State) (board.Cell, error) {
	s.clearAbort()
	if st.Turn() == board.Empty {
		return board.Cell{}, ErrGameOver
	}
	s.totalNodes = 0
	s.rootNode = nil
	s.maximizingColor = st.Turn()

	moves := st.ValidMoves()
	if len(moves) == 1 {
		log.Debug().Str("move", moves[0].String()).Msg("only-move")
		s.searchDepth = 0
		s.rootNode = newRootNode(st)
		s.rootNode.next = s.rootNode.child(moves[0])
		return moves[0], nil
	}

	s.searchDepth = s.DepthFor(st)
	log.Debug().Int("plies", s.searchDepth).
		Bool("dynamic-depth", s.dynamicDepth).
		Bool("pruning", !s.disablePruning).
		Str("color", s.maximizingColor.String()).
		Str("genome", s.genome.ID()).
		Msg("alphabeta-solve-config")

	tstart := time.Now()
	root := newRootNode(st)
	ab := fullWindow()
	if s.disablePruning {
		ab = bounds{}
	}
	v, err := s.alphabeta(ctx, root, ab)
	if err != nil {
		log.Debug().Int("nodes", s.totalNodes).Msg("search-aborted")
		return board.Cell{}, err
	}
	if root.next == nil {
		panic("search finished without a principal successor")
	}
	s.rootNode = root
	best, ok := st.Board().Conform(root.next.move)
	if !ok {
		panic("best move does not exist on the searched board")
	}
	log.Debug().
		Int("nodes", s.totalNodes).
		Int("value", v).
		Str("move", best.String()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return best, nil
}

func (s *Solver) checkAbort(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	default:
	}
	if s.isAborted() {
		return ErrAborted
	}
	return nil
}

// alphabeta returns the value of node from the maximizing color's point
// of view. Whether a node maximizes depends on whose turn it is, so
// passes need no special handling.
func (s *Solver) alphabeta(ctx context.Context, node *GameNode, ab bounds) (int, error) {
	if err := s.checkAbort(ctx); err != nil {
		return 0, err
	}
	s.totalNodes++

	st := node.state
	if st.Turn() == board.Empty || int(node.depth) >= s.searchDepth {
		node.value = heuristic.Evaluate(st.Board(), s.maximizingColor).Value(s.genome)
		return node.value, nil
	}

	maximizing := st.Turn() == s.maximizingColor
	found := false
	best := 0
	for _, m := range st.ValidMoves() {
		child := node.child(m)
		v, err := s.alphabeta(ctx, child, ab)
		if err != nil {
			return 0, err
		}
		if maximizing {
			if !found || v > best {
				best = v
				node.next = child
				found = true
			}
			if ab.active {
				if best >= ab.beta {
					break // beta cut-off
				}
				ab.alpha = max(ab.alpha, best)
			}
		} else {
			if !found || v < best {
				best = v
				node.next = child
				found = true
			}
			if ab.active {
				if best <= ab.alpha {
					break // alpha cut-off
				}
				ab.beta = min(ab.beta, best)
			}
		}
	}
	if !found {
		panic("non-terminal node with no legal moves")
	}
	node.value = best
	return best, nil
}
