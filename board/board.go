// Package board implements one player's side of the table: the pattern
// lines tiles are staged on, the mosaic wall they are built onto, and the
// floor line that collects (and penalizes) anything that does not fit.
package board

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/azul/rules"
)

// NoColor marks an empty pattern line.
const NoColor = -1

// PatternLine is a staging row of capacity row+1 holding tiles of a single
// color.
type PatternLine struct {
	Count int
	Color int
}

// ScoringBoard is a single player's board. The mosaic uses a fixed Latin
// square: color c on row r lives in column (r + c) mod NumColors.
type ScoringBoard struct {
	numColors int
	penalties []int

	mosaic [][]bool
	lines  []PatternLine
	floor  int
}

func NewScoringBoard(r rules.Rules) *ScoringBoard {
	b := &ScoringBoard{
		numColors: r.NumColors,
		penalties: append([]int(nil), r.FloorPenalties...),
	}
	b.mosaic = make([][]bool, r.NumColors)
	for i := range b.mosaic {
		b.mosaic[i] = make([]bool, r.NumColors)
	}
	b.lines = make([]PatternLine, r.NumColors)
	b.Reset()
	return b
}

// Reset clears the mosaic, every pattern line and the floor for a new game.
func (b *ScoringBoard) Reset() {
	for _, row := range b.mosaic {
		clear(row)
	}
	for i := range b.lines {
		b.lines[i] = PatternLine{Color: NoColor}
	}
	b.floor = 0
}

// Column returns the mosaic column color maps to on row.
func (b *ScoringBoard) Column(color, row int) int {
	return (row + color) % b.numColors
}

// ColorAt returns the color whose mosaic cell on row is column.
func (b *ScoringBoard) ColorAt(row, column int) int {
	return ((column-row)%b.numColors + b.numColors) % b.numColors
}

// AddTiles places numTiles tiles of color on the pattern line for row and
// returns the resulting score change. Tiles that cannot go on the line (the
// color is already on the wall for that row, or the line holds another
// color) all drop to the floor. Filling the line builds its tile onto the
// mosaic right away and the overflow drops to the floor. Claiming the
// first-player token costs one more floor slot.
func (b *ScoringBoard) AddTiles(color, row, numTiles int, firstPlayerToken bool) int {
	if numTiles <= 0 {
		panic(fmt.Sprintf("AddTiles needs a positive tile count, got %d", numTiles))
	}
	b.checkColorRow(color, row)

	delta := 0
	line := &b.lines[row]
	switch {
	case b.IsComplete(color, row):
		delta += b.BreakTiles(numTiles)
	case line.Count > 0 && line.Color != color:
		delta += b.BreakTiles(numTiles)
	default:
		line.Color = color
		available := row + 1 - line.Count
		if numTiles < available {
			line.Count += numTiles
			break
		}
		delta += b.build(color, row)
		if excess := numTiles - available; excess > 0 {
			delta += b.BreakTiles(excess)
		}
	}
	if firstPlayerToken {
		delta += b.BreakTiles(1)
	}
	return delta
}

// build moves a full pattern line onto the mosaic.
func (b *ScoringBoard) build(color, row int) int {
	col := b.Column(color, row)
	b.mosaic[row][col] = true
	b.lines[row] = PatternLine{Color: NoColor}
	reward := b.BuildReward(row, col)
	log.Debug().Int("row", row).Int("col", col).Int("reward", reward).Msg("built-tile")
	return reward
}

// BuildReward scores the tile at (row, column), which must already be on
// the mosaic. A lone tile is worth 1; otherwise it is worth the length of
// each horizontal and vertical run it joins. Completing the row adds 2, the
// column 7, and the tile's color across the whole wall 10.
func (b *ScoringBoard) BuildReward(row, column int) int {
	rowRun := b.run(row, column, 0, 1)
	colRun := b.run(row, column, 1, 0)

	var reward int
	switch {
	case colRun == 1:
		reward = rowRun
	case rowRun == 1:
		reward = colRun
	default:
		reward = rowRun + colRun
	}
	if rowRun == b.numColors {
		reward += 2
	}
	if colRun == b.numColors {
		reward += 7
	}
	if b.colorComplete(b.ColorAt(row, column)) {
		reward += 10
	}
	return reward
}

// run returns the length of the contiguous run of set cells through
// (row, col) along direction (dr, dc), counting the cell itself.
func (b *ScoringBoard) run(row, col, dr, dc int) int {
	n := 1
	for r, c := row-dr, col-dc; r >= 0 && c >= 0 && b.mosaic[r][c]; r, c = r-dr, c-dc {
		n++
	}
	for r, c := row+dr, col+dc; r < b.numColors && c < b.numColors && b.mosaic[r][c]; r, c = r+dr, c+dc {
		n++
	}
	return n
}

func (b *ScoringBoard) colorComplete(color int) bool {
	for r := 0; r < b.numColors; r++ {
		if !b.mosaic[r][b.Column(color, r)] {
			return false
		}
	}
	return true
}

// BreakTiles drops numTiles onto the floor and returns the penalty for the
// slots they newly occupy. Tiles past the last slot are discarded for free.
func (b *ScoringBoard) BreakTiles(numTiles int) int {
	prev := b.floor
	b.floor = min(b.floor+numTiles, len(b.penalties))
	penalty := 0
	for _, p := range b.penalties[prev:b.floor] {
		penalty += p
	}
	return penalty
}

// EndRound clears the floor line. Pattern lines and the mosaic carry over.
func (b *ScoringBoard) EndRound() {
	b.floor = 0
}

// IsComplete reports whether color is already on the wall in row.
func (b *ScoringBoard) IsComplete(color, row int) bool {
	b.checkColorRow(color, row)
	return b.mosaic[row][b.Column(color, row)]
}

// Done reports whether any mosaic row is full, which ends the game.
func (b *ScoringBoard) Done() bool {
	for _, row := range b.mosaic {
		full := true
		for _, set := range row {
			if !set {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

func (b *ScoringBoard) FloorCount() int {
	return b.floor
}

func (b *ScoringBoard) PatternLine(row int) PatternLine {
	return b.lines[row]
}

// Filled reports whether the mosaic cell at (row, column) is set.
func (b *ScoringBoard) Filled(row, column int) bool {
	return b.mosaic[row][column]
}

func (b *ScoringBoard) NumColors() int {
	return b.numColors
}

// Copy returns an independent copy of the board.
func (b *ScoringBoard) Copy() *ScoringBoard {
	c := &ScoringBoard{
		numColors: b.numColors,
		penalties: b.penalties,
		lines:     append([]PatternLine(nil), b.lines...),
		floor:     b.floor,
	}
	c.mosaic = make([][]bool, len(b.mosaic))
	for i, row := range b.mosaic {
		c.mosaic[i] = append([]bool(nil), row...)
	}
	return c
}

// Preview returns the score change AddTiles would produce without
// modifying the board.
func (b *ScoringBoard) Preview(color, row, numTiles int, firstPlayerToken bool) int {
	return b.Copy().AddTiles(color, row, numTiles, firstPlayerToken)
}

// Observation flattens the board: the mosaic row-major as 1/0, then the
// pattern line counts, then the pattern line colors (0 for an empty line),
// then the floor count.
func (b *ScoringBoard) Observation() []int {
	n := b.numColors
	obs := make([]int, 0, n*n+2*n+1)
	for _, row := range b.mosaic {
		for _, set := range row {
			if set {
				obs = append(obs, 1)
			} else {
				obs = append(obs, 0)
			}
		}
	}
	for _, l := range b.lines {
		obs = append(obs, l.Count)
	}
	for _, l := range b.lines {
		obs = append(obs, max(l.Color, 0))
	}
	return append(obs, b.floor)
}

// ToDisplayText renders pattern lines next to the mosaic. Built cells show
// their color letter in upper case, open cells in lower case.
func (b *ScoringBoard) ToDisplayText() string {
	var sb strings.Builder
	n := b.numColors
	for r := 0; r < n; r++ {
		line := b.lines[r]
		sb.WriteString(strings.Repeat(" ", n-r-1))
		for i := 0; i <= r; i++ {
			if i < r+1-line.Count {
				sb.WriteByte('.')
			} else {
				sb.WriteString(ColorLetter(line.Color))
			}
		}
		sb.WriteString(" | ")
		for c := 0; c < n; c++ {
			letter := ColorLetter(b.ColorAt(r, c))
			if b.Filled(r, c) {
				sb.WriteString(strings.ToUpper(letter))
			} else {
				sb.WriteString(strings.ToLower(letter))
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "floor: %d/%d\n", b.floor, len(b.penalties))
	return sb.String()
}

func (b *ScoringBoard) checkColorRow(color, row int) {
	if color < 0 || color >= b.numColors {
		panic(fmt.Sprintf("color index %d out of range [0, %d)", color, b.numColors))
	}
	if row < 0 || row >= b.numColors {
		panic(fmt.Sprintf("row index %d out of range [0, %d)", row, b.numColors))
	}
}
