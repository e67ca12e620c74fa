package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScoreFor(t *testing.T) {
	tests := []struct {
		name     string
		hand     Hand
		category Category
		want     int
	}{
		{name: "ones counted", hand: Hand{1, 1, 2, 1, 5}, category: Ones, want: 3},
		{name: "ones absent", hand: Hand{2, 3, 4, 5, 6}, category: Ones, want: 0},
		{name: "fives", hand: Hand{5, 5, 2, 3, 5}, category: Fives, want: 15},
		{name: "sixes yacht", hand: Hand{6, 6, 6, 6, 6}, category: Sixes, want: 30},
		{name: "choice always sums", hand: Hand{1, 3, 4, 6, 2}, category: Choice, want: 16},
		{name: "four of a kind", hand: Hand{4, 4, 4, 1, 4}, category: FourOfAKind, want: 17},
		{name: "four of a kind from five", hand: Hand{2, 2, 2, 2, 2}, category: FourOfAKind, want: 10},
		{name: "three of a kind is not four", hand: Hand{4, 4, 4, 1, 2}, category: FourOfAKind, want: 0},
		{name: "full house", hand: Hand{3, 5, 3, 5, 3}, category: FullHouse, want: 19},
		{name: "yacht is not a full house", hand: Hand{5, 5, 5, 5, 5}, category: FullHouse, want: 0},
		{name: "four plus one is not a full house", hand: Hand{5, 5, 5, 5, 1}, category: FullHouse, want: 0},
		{name: "two pairs are not a full house", hand: Hand{1, 1, 2, 2, 3}, category: FullHouse, want: 0},
		{name: "small straight low", hand: Hand{1, 2, 3, 4, 6}, category: SmallStraight, want: 15},
		{name: "small straight with duplicate", hand: Hand{2, 3, 3, 4, 5}, category: SmallStraight, want: 15},
		{name: "small straight with leading pair", hand: Hand{1, 1, 2, 3, 4}, category: SmallStraight, want: 15},
		{name: "small straight high unordered", hand: Hand{6, 4, 5, 3, 3}, category: SmallStraight, want: 15},
		{name: "large straight counts as small", hand: Hand{1, 2, 3, 4, 5}, category: SmallStraight, want: 15},
		{name: "no small straight", hand: Hand{1, 1, 2, 2, 3}, category: SmallStraight, want: 0},
		{name: "gap breaks small straight", hand: Hand{1, 2, 3, 5, 6}, category: SmallStraight, want: 0},
		{name: "large straight low", hand: Hand{5, 4, 3, 2, 1}, category: LargeStraight, want: 30},
		{name: "large straight high", hand: Hand{2, 6, 4, 3, 5}, category: LargeStraight, want: 30},
		{name: "duplicate breaks large straight", hand: Hand{2, 3, 4, 5, 5}, category: LargeStraight, want: 0},
		{name: "one to six gap", hand: Hand{1, 2, 3, 4, 6}, category: LargeStraight, want: 0},
		{name: "yacht", hand: Hand{3, 3, 3, 3, 3}, category: Yacht, want: 50},
		{name: "not a yacht", hand: Hand{3, 3, 3, 3, 2}, category: Yacht, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreFor(tt.category, tt.hand); got != tt.want {
				t.Fatalf("ScoreFor(%s, %v) = %d, want %d", tt.category, tt.hand, got, tt.want)
			}
		})
	}
}

func TestUpperScoreIsFaceTimesCount(t *testing.T) {
	hands := []Hand{
		{1, 2, 3, 4, 5},
		{6, 6, 1, 6, 2},
		{4, 4, 4, 4, 4},
		{2, 5, 2, 5, 2},
	}
	for _, hand := range hands {
		counts := hand.Counts()
		for face := 1; face <= DieFaces; face++ {
			c := Category(face - 1)
			if got, want := ScoreFor(c, hand), face*counts[face]; got != want {
				t.Fatalf("%s on %v = %d, want %d", c, hand, got, want)
			}
		}
	}
}

func TestLegalOptionsFullHouseHand(t *testing.T) {
	var sheet ScoreSheet
	got := LegalOptions(Hand{2, 2, 2, 3, 3}, &sheet)
	want := []Option{
		{Category: Ones, Score: 0},
		{Category: Twos, Score: 6},
		{Category: Threes, Score: 6},
		{Category: Fours, Score: 0},
		{Category: Fives, Score: 0},
		{Category: Sixes, Score: 0},
		{Category: Choice, Score: 12},
		{Category: FourOfAKind, Score: 0},
		{Category: FullHouse, Score: 12},
		{Category: SmallStraight, Score: 0},
		{Category: LargeStraight, Score: 0},
		{Category: Yacht, Score: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("LegalOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestAllScoresYachtHand(t *testing.T) {
	got := AllScores(Hand{6, 6, 6, 6, 6})
	want := [CategoryCount]int{
		Sixes:       30,
		Choice:      30,
		FourOfAKind: 30,
		Yacht:       50,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AllScores mismatch (-want +got):\n%s", diff)
	}
}

func TestLegalOptionsExcludesFilledCategories(t *testing.T) {
	var sheet ScoreSheet
	filled := []Category{Twos, FullHouse, Yacht}
	for _, c := range filled {
		if err := sheet.Record(c, 1); err != nil {
			t.Fatalf("Record(%s): %v", c, err)
		}
	}

	hands := []Hand{{2, 2, 2, 3, 3}, {6, 6, 6, 6, 6}, {1, 2, 3, 4, 5}}
	for _, hand := range hands {
		options := LegalOptions(hand, &sheet)
		if len(options) != CategoryCount-len(filled) {
			t.Fatalf("got %d options for %v, want %d", len(options), hand, CategoryCount-len(filled))
		}
		for i, opt := range options {
			if sheet.IsFilled(opt.Category) {
				t.Fatalf("filled category %s offered for %v", opt.Category, hand)
			}
			if i > 0 && options[i-1].Category >= opt.Category {
				t.Fatalf("options out of display order: %v", options)
			}
		}
	}
}

func TestLegalOptionsFullSheet(t *testing.T) {
	var sheet ScoreSheet
	for _, c := range Categories() {
		if err := sheet.Record(c, 0); err != nil {
			t.Fatalf("Record(%s): %v", c, err)
		}
	}
	if got := LegalOptions(Hand{1, 2, 3, 4, 5}, &sheet); len(got) != 0 {
		t.Fatalf("expected no options on a full sheet, got %v", got)
	}
}

func TestLegalOptionsDeterministic(t *testing.T) {
	var sheet ScoreSheet
	hand := Hand{3, 1, 4, 1, 5}
	first := LegalOptions(hand, &sheet)
	second := LegalOptions(hand, &sheet)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("LegalOptions not deterministic:\n%s", diff)
	}
}
