package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/controller"
	"github.com/domino14/reversi/game"
)

// Result is the outcome of one match.
type Result struct {
	Black     int
	White     int
	BlackTime time.Duration
	WhiteTime time.Duration
	Moves     int
}

// Cmp is 1 if black won, -1 if white won and 0 on a tie.
func (r Result) Cmp() int {
	switch {
	case r.Black > r.White:
		return 1
	case r.Black < r.White:
		return -1
	}
	return 0
}

func (r Result) String() string {
	return fmt.Sprintf("%d/%d, time=%s/%s", r.Black, r.White,
		r.BlackTime.Round(time.Millisecond), r.WhiteTime.Round(time.Millisecond))
}

// Battle plays black against white from a copy of start until the game
// ends. Both players run in the calling goroutine; if ctx is done before
// the game ends, Battle returns ctx's error.
func Battle(ctx context.Context, start *game.State, black, white player.AIPlayer) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	c := controller.New(start.Copy())
	c.SetPlayer(board.Black, black)
	c.SetPlayer(board.White, white)
	c.StartGameContext(ctx)

	end := c.State()
	if end.Playing() != game.GameOver {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{}, ErrMatchIncomplete
	}
	b, w := end.Score()
	h := c.History()
	return Result{
		Black:     b,
		White:     w,
		BlackTime: c.TotalTime(board.Black),
		WhiteTime: c.TotalTime(board.White),
		Moves:     len(h.Moves()),
	}, nil
}
