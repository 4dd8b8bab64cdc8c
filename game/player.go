package game

import (
	"github.com/domino14/azul/board"
	"github.com/domino14/azul/rules"
)

type playerState struct {
	nickname string

	board  *board.ScoringBoard
	points int
	turns  int
}

func newPlayerState(nickname string, r rules.Rules) *playerState {
	return &playerState{
		nickname: nickname,
		board:    board.NewScoringBoard(r),
	}
}

func (p *playerState) reset() {
	p.board.Reset()
	p.points = 0
	p.turns = 0
}
