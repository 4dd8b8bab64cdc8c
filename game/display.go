package game

import (
	"fmt"
	"strings"

	"github.com/domino14/azul/board"
	"github.com/domino14/azul/factory"
)

// ToDisplayText renders the factories, the center and both boards for the
// console.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round %d, turn %d\n", g.round, g.turnnum)
	s := g.supply
	for p := 0; p < s.NumPools(); p++ {
		if p == factory.CenterPool {
			sb.WriteString("center:  ")
		} else {
			fmt.Fprintf(&sb, "factory %d: ", p)
		}
		for c := 0; c < s.NumColors(); c++ {
			sb.WriteString(strings.Repeat(board.ColorLetter(c), s.Count(p, c)))
		}
		if p == factory.CenterPool && s.FirstPlayerTokenAvailable() {
			sb.WriteString(" [1]")
		}
		sb.WriteByte('\n')
	}
	for i, p := range g.players {
		sb.WriteByte('\n')
		marker := "   "
		if g.playing && i == g.onturn {
			marker = "-> "
		}
		fmt.Fprintf(&sb, "%s%s: %d points\n", marker, p.nickname, p.points)
		sb.WriteString(p.board.ToDisplayText())
	}
	if !g.playing {
		fmt.Fprintf(&sb, "\nGame over (%s).\n", g.endReason)
	}
	return sb.String()
}
