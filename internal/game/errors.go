package game

import "errors"

// errTerminal is returned by Play once the position has reached a terminal
// status: checkmate or any draw freezes the game.
var errTerminal = errors.New("game: position is terminal, no further moves accepted")

// errIllegalMove is returned by Play when the supplied move is not in the
// current position's legal move list.
var errIllegalMove = errors.New("game: move is not legal in the current position")
