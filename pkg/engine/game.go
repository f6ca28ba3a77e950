package engine

import "math/rand"

// Game is everything the solver needs from a game. M is the move type.
//
// Result must return a value in [0, 1] from the point of view of player once
// the game is over; ValidMoves is empty exactly then.
type Game[M comparable] interface {
	// CloneAndRandomise returns an independent copy where everything observer
	// cannot see has been resampled.
	CloneAndRandomise(observer int, rng *rand.Rand) Game[M]
	CurrentPlayer() int
	ValidMoves() []M
	DoMove(move M)
	Result(player int) float64
}
