package domain

import (
	"errors"
	"math/rand"
	"testing"
)

// scriptedSource returns the queued faces in order.
type scriptedSource struct {
	faces []int
}

func (s *scriptedSource) Intn(n int) int {
	face := s.faces[0]
	s.faces = s.faces[1:]
	return face - 1
}

func TestRollDiceKeepsHeldDice(t *testing.T) {
	hand := Hand{1, 2, 3, 4, 5}
	held := HoldMask{true, false, true, false, false}
	src := &scriptedSource{faces: []int{6, 6, 6}}

	got := RollDice(hand, held, src)
	want := Hand{1, 6, 3, 6, 6}
	if got != want {
		t.Fatalf("RollDice() = %v, want %v", got, want)
	}
	if len(src.faces) != 0 {
		t.Fatalf("expected exactly three dice rolled, %d faces left", len(src.faces))
	}
	if hand != (Hand{1, 2, 3, 4, 5}) {
		t.Fatalf("input hand mutated: %v", hand)
	}
}

func TestRollDiceAllHeld(t *testing.T) {
	hand := Hand{2, 2, 2, 2, 2}
	held := HoldMask{true, true, true, true, true}
	if got := RollDice(hand, held, &scriptedSource{}); got != hand {
		t.Fatalf("RollDice() = %v, want %v", got, hand)
	}
}

func TestRollDiceFacesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var hand Hand
	for i := 0; i < 500; i++ {
		hand = RollDice(hand, HoldMask{}, rng)
		if !hand.Rolled() {
			t.Fatalf("face out of range: %v", hand)
		}
	}
}

func TestToggleHold(t *testing.T) {
	var held HoldMask
	held, err := ToggleHold(held, 2)
	if err != nil {
		t.Fatalf("ToggleHold: %v", err)
	}
	if held != (HoldMask{false, false, true, false, false}) {
		t.Fatalf("unexpected mask %v", held)
	}
	held, err = ToggleHold(held, 2)
	if err != nil {
		t.Fatalf("ToggleHold: %v", err)
	}
	if held.HeldCount() != 0 {
		t.Fatalf("expected toggle back to unheld, got %v", held)
	}
}

func TestToggleHoldOutOfRange(t *testing.T) {
	held := HoldMask{true}
	for _, index := range []int{-1, DiceCount, 42} {
		got, err := ToggleHold(held, index)
		if !errors.Is(err, ErrDieIndexOutOfRange) {
			t.Fatalf("ToggleHold(%d) error = %v, want ErrDieIndexOutOfRange", index, err)
		}
		if got != held {
			t.Fatalf("mask changed on rejected toggle: %v", got)
		}
	}
}

func TestHandRolled(t *testing.T) {
	if (Hand{}).Rolled() {
		t.Fatal("zero hand should not count as rolled")
	}
	if !(Hand{1, 6, 3, 2, 5}).Rolled() {
		t.Fatal("full hand should count as rolled")
	}
}
