package alphabeta

import (
	"fmt"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
)

// A GameNode is one position in the search tree. Each node owns a private
// copy of the game state. After the search, next points at the child
// that realized the node's value, so following next from the root gives
// the principal variation.
type GameNode struct {
	state  *game.State
	move   board.Cell
	parent *GameNode
	next   *GameNode
	value  int
	depth  uint8
}

func newRootNode(st *game.State) *GameNode {
	return &GameNode{state: st.Copy()}
}

// child plays m on a copy of the node's state.
func (g *GameNode) child(m board.Cell) *GameNode {
	st := g.state.Copy()
	if !st.PlayMove(m) {
		panic(fmt.Sprintf("search generated illegal move %s", m))
	}
	return &GameNode{
		state:  st,
		move:   m,
		parent: g,
		depth:  g.depth + 1,
	}
}

func (g *GameNode) Parent() *GameNode { return g.parent }
func (g *GameNode) Next() *GameNode   { return g.next }
func (g *GameNode) Move() board.Cell  { return g.move }
func (g *GameNode) Value() int        { return g.value }
func (g *GameNode) GetDepth() uint8   { return g.depth }

func (g *GameNode) String() string {
	return fmt.Sprintf("<gamenode move %v, value %v, depth %v>", g.move, g.value, g.depth)
}
