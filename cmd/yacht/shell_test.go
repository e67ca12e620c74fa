package main

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"yachtdice/internal/app"
	"yachtdice/internal/domain"
)

func newTestShell(input string) (*shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	svc := app.NewService(rand.New(rand.NewSource(3)), nil)
	return newShell(svc, strings.NewReader(input), out), out
}

// quickTurns scores the first listed option right after the first roll.
func quickTurns(n int) string {
	return strings.Repeat("\n3\n1\n", n)
}

func TestShell_FullGameWithPresetNames(t *testing.T) {
	sh, out := newTestShell(quickTurns(2 * domain.MaxRounds))

	if err := sh.run([]string{"Ann", "Bob"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if got := strings.Count(text, "'s turn ==="); got != 2*domain.MaxRounds {
		t.Errorf("played %d turns, want %d", got, 2*domain.MaxRounds)
	}
	if !strings.Contains(text, "=== Round 12 - Bob's turn ===") {
		t.Error("missing last turn header")
	}
	if !strings.Contains(text, "Game over! Final results") || !strings.Contains(text, "Congratulations!") {
		t.Error("missing final results")
	}
}

func TestShell_AsksForPlayers(t *testing.T) {
	input := "five\n5\n2\n\nAnn\nBob\n" + quickTurns(2*domain.MaxRounds)
	sh, out := newTestShell(input)

	if err := sh.run(nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Enter a number.", "Enter a number between 2 and 4.", "Name cannot be blank.", "Round 1 - Ann's turn"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShell_InvalidPresetFallsBackToPrompt(t *testing.T) {
	input := "2\nAnn\nBob\n" + quickTurns(2*domain.MaxRounds)
	sh, out := newTestShell(input)

	if err := sh.run([]string{"Solo"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "need 2-4 players, got 1") {
		t.Error("expected the player count rejection to be shown")
	}
}

func TestShell_RepromptsOnBadInput(t *testing.T) {
	turn := "\n" + // first roll
		"9\n" + // unknown action
		"2\n" + "7\n" + "x\n" + "1\n" + "0\n" + // holds
		"1\n" + // second roll
		"3\n" + // score
		"0\n" + "99\n" + "1\n" // bad choices then the first option
	input := turn + quickTurns(2*domain.MaxRounds-1)
	sh, out := newTestShell(input)

	if err := sh.run([]string{"Ann", "Bob"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Invalid input.",
		"die number 7 out of range 1-5",
		`"x" is not a number`,
		"Die 1: ",
		"(held)",
		"choice 0 out of range",
		"choice 99 out of range",
		"(2/3 rolls)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShell_ThirdRollGoesStraightToScoring(t *testing.T) {
	input := "\n1\n1\n1\n" + quickTurns(2*domain.MaxRounds-1)
	sh, out := newTestShell(input)

	if err := sh.run([]string{"Ann", "Bob"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "(3/3 rolls)") {
		t.Error("expected three rolls in the first turn")
	}
}

func TestShell_InputClosed(t *testing.T) {
	sh, _ := newTestShell("\n3\n")
	err := sh.run([]string{"Ann", "Bob"})
	if !errors.Is(err, errInputClosed) {
		t.Fatalf("err = %v, want %v", err, errInputClosed)
	}
}

func TestSplitNames(t *testing.T) {
	got := splitNames(" Ann, ,Bob ,")
	if len(got) != 2 || got[0] != "Ann" || got[1] != "Bob" {
		t.Errorf("splitNames = %q, want [Ann Bob]", got)
	}
	if splitNames("") != nil {
		t.Error("empty input should yield no names")
	}
}
