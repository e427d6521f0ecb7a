package automatic

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var matchLogHeader = []string{
	"generation", "match", "black", "white",
	"black_discs", "white_discs", "black_ms", "white_ms", "moves",
}

// MatchRecord is one row of the match log.
type MatchRecord struct {
	Generation int
	Match      int
	Black      string
	White      string
	Result     Result
}

func (m MatchRecord) row() []string {
	return []string{
		strconv.Itoa(m.Generation),
		strconv.Itoa(m.Match),
		m.Black,
		m.White,
		strconv.Itoa(m.Result.Black),
		strconv.Itoa(m.Result.White),
		strconv.FormatInt(m.Result.BlackTime.Milliseconds(), 10),
		strconv.FormatInt(m.Result.WhiteTime.Milliseconds(), 10),
		strconv.Itoa(m.Result.Moves),
	}
}

// StartMatchLog opens path and starts a goroutine that writes every
// record sent on the returned channel as a CSV row. Calling the returned
// func closes the channel, waits for the writer to drain it and closes the
// file.
func StartMatchLog(path string) (chan<- MatchRecord, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(matchLogHeader); err != nil {
		f.Close()
		return nil, nil, err
	}
	logChan := make(chan MatchRecord, 64)
	done := make(chan error, 1)

	go func() {
		var werr error
		for rec := range logChan {
			if werr != nil {
				continue
			}
			if werr = w.Write(rec.row()); werr != nil {
				log.Err(werr).Str("file", path).Msg("match-log-write")
			}
		}
		w.Flush()
		if werr == nil {
			werr = w.Error()
		}
		done <- werr
	}()

	closer := func() error {
		close(logChan)
		werr := <-done
		cerr := f.Close()
		if werr != nil {
			return werr
		}
		return cerr
	}
	return logChan, closer, nil
}
