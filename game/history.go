package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/domino14/reversi/board"
)

type EventType uint8

const (
	EventMove EventType = iota
	EventPass
)

// An Event is one entry in a game record: a move, or a color giving up its
// turn because it had no legal move.
type Event struct {
	Type    EventType
	Color   board.Color
	Cell    board.Cell
	Black   int
	White   int
	Elapsed time.Duration
}

func (e Event) String() string {
	if e.Type == EventPass {
		return fmt.Sprintf("%s passes", e.Color)
	}
	return fmt.Sprintf("%s %s (%d-%d) %s", e.Color, e.Cell, e.Black, e.White,
		e.Elapsed.Round(time.Millisecond))
}

// History is an append-only game record.
type History struct {
	Events []Event
}

// RecordMove appends a move event with the disc counts after the move.
func (h *History) RecordMove(s *State, color board.Color, c board.Cell, elapsed time.Duration) {
	black, white := s.Score()
	h.Events = append(h.Events, Event{
		Type: EventMove, Color: color, Cell: c,
		Black: black, White: white, Elapsed: elapsed,
	})
}

// RecordPass appends a pass for color.
func (h *History) RecordPass(s *State, color board.Color) {
	black, white := s.Score()
	h.Events = append(h.Events, Event{
		Type: EventPass, Color: color, Black: black, White: white,
	})
}

// Moves returns only the cells played, in order.
func (h *History) Moves() []board.Cell {
	var out []board.Cell
	for _, e := range h.Events {
		if e.Type == EventMove {
			out = append(out, e.Cell)
		}
	}
	return out
}

func (h *History) String() string {
	var sb strings.Builder
	for i, e := range h.Events {
		fmt.Fprintf(&sb, "%3d. %s\n", i+1, e)
	}
	return sb.String()
}
