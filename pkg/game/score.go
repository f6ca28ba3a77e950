package game

import "fmt"

// Score is kaartpunten plus roem.
type Score struct {
	Points int
	Bonus  int
}

func (s Score) Sum() int { return s.Points + s.Bonus }

func (s *Score) Add(o Score) {
	s.Points += o.Points
	s.Bonus += o.Bonus
}

func (s Score) String() string {
	return fmt.Sprintf("%d+%d", s.Points, s.Bonus)
}

// RoundScore is the score of one team for one round.
type RoundScore struct {
	Score
	// Wet ("nat"): the contracting team did not beat the defenders.
	Wet bool
	// March ("pit"): the contracting team took every trick.
	March bool
}

// SetWet zeroes the score and marks it wet.
func (r *RoundScore) SetWet() {
	r.Score = Score{}
	r.Wet = true
}

func (r RoundScore) String() string {
	switch {
	case r.Wet:
		return "nat"
	case r.March:
		return fmt.Sprintf("%s (pit)", r.Score)
	}
	return r.Score.String()
}

// Team returns the team of a seat; seats 0 and 2 form team 0.
func Team(seat int) int { return seat % 2 }

// Partner returns the seat across the table.
func Partner(seat int) int { return (seat + 2) % PlayersPerTrick }
