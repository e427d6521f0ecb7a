package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/reversi/stats"
)

type genomeTally struct {
	id     string
	wins   float64
	games  int
	discs  stats.Statistic
	timeMs stats.Statistic
}

// AnalyzeMatchLog reads a match log written by StartMatchLog and
// summarizes it: overall black/white results, then per-genome win rate,
// disc count and thinking time.
func AnalyzeMatchLog(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)
	r.FieldsPerRecord = len(matchLogHeader)

	tallies := map[string]*genomeTally{}
	tally := func(id string) *genomeTally {
		t, ok := tallies[id]
		if !ok {
			t = &genomeTally{id: id}
			tallies[id] = t
		}
		return t
	}
	var blackWins, whiteWins, ties int
	var margin stats.Statistic
	gamesPlayed := 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == matchLogHeader[0] {
			continue
		}
		nums := make([]int, 4)
		for i, col := range []int{4, 5, 6, 7} {
			nums[i], err = strconv.Atoi(record[col])
			if err != nil {
				return "", fmt.Errorf("line %d: %w", gamesPlayed+2, err)
			}
		}
		bd, wd, bms, wms := nums[0], nums[1], nums[2], nums[3]
		bt, wt := tally(record[2]), tally(record[3])
		bt.games++
		wt.games++
		bt.discs.PushInt(bd)
		wt.discs.PushInt(wd)
		bt.timeMs.PushInt(bms)
		wt.timeMs.PushInt(wms)
		margin.PushInt(bd - wd)
		switch {
		case bd > wd:
			blackWins++
			bt.wins++
		case bd < wd:
			whiteWins++
			wt.wins++
		default:
			ties++
			bt.wins += 0.5
			wt.wins += 0.5
		}
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "Games played: 0\n", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", gamesPlayed)
	fmt.Fprintf(&sb, "Black wins: %d (%.3f%%)\n", blackWins, 100.0*float64(blackWins)/float64(gamesPlayed))
	fmt.Fprintf(&sb, "White wins: %d (%.3f%%)\n", whiteWins, 100.0*float64(whiteWins)/float64(gamesPlayed))
	fmt.Fprintf(&sb, "Ties: %d\n", ties)
	lo, hi := margin.ConfidenceInterval(95)
	fmt.Fprintf(&sb, "Black margin: %.3f (95%% CI %.3f to %.3f)\n", margin.Mean(), lo, hi)

	ordered := make([]*genomeTally, 0, len(tallies))
	for _, t := range tallies {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool {
		wi := ordered[i].wins / float64(ordered[i].games)
		wj := ordered[j].wins / float64(ordered[j].games)
		if wi != wj {
			return wi > wj
		}
		return ordered[i].id < ordered[j].id
	})
	fmt.Fprintf(&sb, "%-8s %6s %8s %10s %10s\n", "genome", "games", "win%", "discs", "ms/game")
	for _, t := range ordered {
		fmt.Fprintf(&sb, "%-8s %6d %8.2f %10.2f %10.1f\n", t.id, t.games,
			100*t.wins/float64(t.games), t.discs.Mean(), t.timeMs.Mean())
	}
	return sb.String(), nil
}
