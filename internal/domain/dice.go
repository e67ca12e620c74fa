package domain

import (
	"errors"
	"fmt"
)

// ErrDieIndexOutOfRange is returned when a hold toggle targets a missing die.
var ErrDieIndexOutOfRange = errors.New("die index out of range")

// Hand is the five die faces of the current turn. A zero face means the die
// has not been rolled yet.
type Hand [DiceCount]int

// HoldMask marks the dice kept out of the next roll.
type HoldMask [DiceCount]bool

// Source supplies randomness for rolls. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a non-negative int in [0, n).
	Intn(n int) int
}

// RollDice returns a copy of hand with every unheld die replaced by a fresh face.
func RollDice(hand Hand, held HoldMask, src Source) Hand {
	for i := range hand {
		if held[i] {
			continue
		}
		hand[i] = src.Intn(DieFaces) + 1
	}
	return hand
}

// ToggleHold flips the held flag of the die at index.
func ToggleHold(held HoldMask, index int) (HoldMask, error) {
	if index < 0 || index >= DiceCount {
		return held, fmt.Errorf("%w: %d", ErrDieIndexOutOfRange, index)
	}
	held[index] = !held[index]
	return held, nil
}

// Rolled reports whether every die shows a face.
func (h Hand) Rolled() bool {
	for _, v := range h {
		if v < 1 || v > DieFaces {
			return false
		}
	}
	return true
}

// Sum adds up the faces of the hand.
func (h Hand) Sum() int {
	total := 0
	for _, v := range h {
		total += v
	}
	return total
}

// Counts returns the number of dice showing each face; index 0 is unused.
func (h Hand) Counts() [DieFaces + 1]int {
	var counts [DieFaces + 1]int
	for _, v := range h {
		if v >= 1 && v <= DieFaces {
			counts[v]++
		}
	}
	return counts
}

// HeldCount returns how many dice are held.
func (m HoldMask) HeldCount() int {
	n := 0
	for _, held := range m {
		if held {
			n++
		}
	}
	return n
}
