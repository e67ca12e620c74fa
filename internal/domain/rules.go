package domain

import "sort"

const (
	smallStraightScore = 15
	largeStraightScore = 30
	yachtScore         = 50
)

// Option is a category still open on a sheet together with the score the
// current hand would record there.
type Option struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
}

// ScoreFor evaluates a single category against the raw hand.
func ScoreFor(c Category, hand Hand) int {
	counts := hand.Counts()
	switch {
	case c.IsUpper():
		return counts[c.Face()] * c.Face()
	case c == Choice:
		return hand.Sum()
	case c == FourOfAKind:
		if maxCount(counts) >= 4 {
			return hand.Sum()
		}
		return 0
	case c == FullHouse:
		if isFullHouse(counts) {
			return hand.Sum()
		}
		return 0
	case c == SmallStraight:
		if longestRun(hand) >= 4 {
			return smallStraightScore
		}
		return 0
	case c == LargeStraight:
		if isLargeStraight(hand) {
			return largeStraightScore
		}
		return 0
	case c == Yacht:
		if maxCount(counts) == DiceCount {
			return yachtScore
		}
		return 0
	default:
		return 0
	}
}

// AllScores evaluates all twelve categories, ignoring any sheet.
func AllScores(hand Hand) [CategoryCount]int {
	var out [CategoryCount]int
	for _, c := range Categories() {
		out[c] = ScoreFor(c, hand)
	}
	return out
}

// LegalOptions lists every category not yet filled on sheet, in display order,
// with the score hand would record there.
func LegalOptions(hand Hand, sheet *ScoreSheet) []Option {
	options := make([]Option, 0, CategoryCount)
	for _, c := range Categories() {
		if sheet != nil && sheet.IsFilled(c) {
			continue
		}
		options = append(options, Option{Category: c, Score: ScoreFor(c, hand)})
	}
	return options
}

func maxCount(counts [DieFaces + 1]int) int {
	best := 0
	for face := 1; face <= DieFaces; face++ {
		if counts[face] > best {
			best = counts[face]
		}
	}
	return best
}

// isFullHouse requires one face exactly three times and a different face exactly twice.
func isFullHouse(counts [DieFaces + 1]int) bool {
	three, two := false, false
	for face := 1; face <= DieFaces; face++ {
		switch counts[face] {
		case 3:
			three = true
		case 2:
			two = true
		}
	}
	return three && two
}

// longestRun returns the longest run of consecutive distinct faces.
func longestRun(hand Hand) int {
	counts := hand.Counts()
	best, run := 0, 0
	for face := 1; face <= DieFaces; face++ {
		if counts[face] == 0 {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// isLargeStraight requires five distinct consecutive faces.
func isLargeStraight(hand Hand) bool {
	sort.Ints(hand[:])
	return hand == Hand{1, 2, 3, 4, 5} || hand == Hand{2, 3, 4, 5, 6}
}
