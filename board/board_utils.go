package board

import (
	"fmt"
	"regexp"
	"strings"
)

var boardPlaintextRegex = regexp.MustCompile(`\|(.+)\|`)

// ToDisplayText renders the board with column letters across the top and
// 1-based row numbers down the side.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for i := 0; i < b.cols; i++ {
		fmt.Fprintf(&sb, "%c ", 'a'+i)
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", b.cols*2) + "\n")
	for r := 0; r < b.rows; r++ {
		fmt.Fprintf(&sb, "%2d|", r+1)
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(b.cells[r*b.cols+c].Rune())
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", b.cols*2) + "\n")
	return "\n" + sb.String()
}

func (b *Board) String() string {
	return b.ToDisplayText()
}

// SetFromRows clears the board (including stable masks) and fills it
// from one string per row. Spaces between cells are ignored, so both
// "XO.." and "X O . ." are accepted.
func (b *Board) SetFromRows(rows []string) error {
	if len(rows) != b.rows {
		return fmt.Errorf("%w: got %d rows, want %d", ErrDimensionMismatch, len(rows), b.rows)
	}
	parsed := make([]Color, 0, len(b.cells))
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != b.cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrDimensionMismatch, r+1, len(line), b.cols)
		}
		for _, ch := range line {
			color, ok := colorFromRune(ch)
			if !ok {
				return fmt.Errorf("%w: unexpected %q in row %d", ErrBadCell, ch, r+1)
			}
			parsed = append(parsed, color)
		}
	}
	b.ClearAll()
	copy(b.cells, parsed)
	b.invalidate()
	return nil
}

// SetFromPlaintext accepts the output of ToDisplayText.
func (b *Board) SetFromPlaintext(text string) error {
	result := boardPlaintextRegex.FindAllStringSubmatch(text, -1)
	rows := make([]string, len(result))
	for i := range result {
		rows[i] = result[i][1]
	}
	return b.SetFromRows(rows)
}
