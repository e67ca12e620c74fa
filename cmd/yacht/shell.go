package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"yachtdice/internal/app"
	"yachtdice/internal/domain"
)

var errInputClosed = errors.New("input closed")

// shell runs one console game against the app service.
type shell struct {
	svc *app.Service
	in  *bufio.Scanner
	out io.Writer
}

func newShell(svc *app.Service, in io.Reader, out io.Writer) *shell {
	return &shell{svc: svc, in: bufio.NewScanner(in), out: out}
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

// prompt prints text and returns the next input line without surrounding blanks.
func (sh *shell) prompt(text string) (string, error) {
	sh.printf("%s", text)
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

// run plays a full game. Preset names are used when valid, otherwise the players are asked.
func (sh *shell) run(names []string) error {
	sh.printf("=== Yacht Dice ===\n")

	var game *domain.Game
	if len(names) > 0 {
		g, _, err := sh.svc.StartGame(names)
		if err != nil {
			sh.printf("%v\n", err)
		}
		game = g
	}
	for game == nil {
		asked, err := sh.askNames()
		if err != nil {
			return err
		}
		g, _, err := sh.svc.StartGame(asked)
		if err != nil {
			sh.printf("%v\n", err)
			continue
		}
		game = g
	}

	for !sh.svc.IsGameOver(game) {
		if err := sh.playTurn(game); err != nil {
			return err
		}
	}
	sh.printResults(game)
	return nil
}

func (sh *shell) askNames() ([]string, error) {
	var count int
	for {
		line, err := sh.prompt(fmt.Sprintf("Number of players (%d-%d): ", domain.MinPlayers, domain.MaxPlayers))
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			sh.printf("Enter a number.\n")
			continue
		}
		if n < domain.MinPlayers || n > domain.MaxPlayers {
			sh.printf("Enter a number between %d and %d.\n", domain.MinPlayers, domain.MaxPlayers)
			continue
		}
		count = n
		break
	}

	names := make([]string, 0, count)
	for len(names) < count {
		name, err := sh.prompt(fmt.Sprintf("Name of player %d: ", len(names)+1))
		if err != nil {
			return nil, err
		}
		if name == "" {
			sh.printf("Name cannot be blank.\n")
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (sh *shell) playTurn(game *domain.Game) error {
	snap := sh.svc.DisplayState(game)
	sh.printf("\n=== Round %d - %s's turn ===\n", snap.Round, snap.CurrentName)

	if _, err := sh.prompt("Press Enter to roll the dice..."); err != nil {
		return err
	}
	if err := sh.roll(game); err != nil {
		return err
	}

	for sh.svc.DisplayState(game).RollsRemaining > 0 {
		action, err := sh.prompt("\nWhat next? (1=roll, 2=hold/release dice, 3=score): ")
		if err != nil {
			return err
		}
		switch action {
		case "1":
			if err := sh.roll(game); err != nil {
				return err
			}
		case "2":
			if err := sh.toggleHolds(game); err != nil {
				return err
			}
		case "3":
			return sh.score(game)
		default:
			sh.printf("Invalid input.\n")
		}
	}
	return sh.score(game)
}

func (sh *shell) roll(game *domain.Game) error {
	sh.printf("\nRolling the dice...\n")
	if _, err := sh.svc.Roll(game); err != nil {
		return err
	}
	sh.printDice(sh.svc.DisplayState(game))
	return nil
}

func (sh *shell) toggleHolds(game *domain.Game) error {
	for {
		line, err := sh.prompt("\nDie to hold/release (1-5, 0=done): ")
		if err != nil {
			return err
		}
		if line == "0" {
			return nil
		}
		index, err := app.ParseDieIndex(line)
		if err != nil {
			sh.printf("%v\n", err)
			continue
		}
		if _, err := sh.svc.ToggleHold(game, index); err != nil {
			return err
		}
		sh.printDice(sh.svc.DisplayState(game))
	}
}

func (sh *shell) score(game *domain.Game) error {
	if _, err := sh.svc.FinishRolling(game); err != nil {
		return err
	}
	snap := sh.svc.DisplayState(game)

	sh.printf("\nCategories you can score:\n")
	for i, opt := range snap.Options {
		sh.printf("%d. %s: %d\n", i+1, opt.Category, opt.Score)
	}

	for {
		line, err := sh.prompt("Choose a category: ")
		if err != nil {
			return err
		}
		category, err := app.ParseOptionChoice(snap.Options, line)
		if err != nil {
			sh.printf("%v\n", err)
			continue
		}
		events, err := sh.svc.ScoreCategory(game, category)
		if err != nil {
			sh.printf("%v\n", err)
			continue
		}
		for _, ev := range events {
			if p, ok := ev.Payload.(app.CategoryScoredPayload); ok {
				sh.printf("Recorded %d points in %s.\n", p.Score, p.Category)
			}
		}
		break
	}

	sh.printScores(sh.svc.DisplayState(game))
	return nil
}

func (sh *shell) printDice(snap app.Snapshot) {
	sh.printf("\nCurrent dice:\n")
	for i, v := range snap.Hand {
		held := ""
		if snap.Held[i] {
			held = " (held)"
		}
		sh.printf("Die %d: %d%s\n", i+1, v, held)
	}
	sh.printf("(%d/%d rolls)\n", snap.RollsUsed, domain.MaxRolls)
}

func (sh *shell) printScores(snap app.Snapshot) {
	sh.printf("\n=== Score board ===\n")
	for _, p := range snap.Players {
		sh.printf("\n%s:\n", p.Name)
		for _, e := range p.Entries {
			if e.Filled {
				sh.printf("%s: %d\n", e.Category, e.Score)
			} else {
				sh.printf("%s: -\n", e.Category)
			}
		}
		sh.printf("Total: %d\n", p.Total)
	}
}

func (sh *shell) printResults(game *domain.Game) {
	sh.printf("\n=== Game over! Final results ===\n")
	for _, p := range game.Standings() {
		sh.printf("%s: %d\n", p.Name, p.Sheet.Total())
	}
	winner := sh.svc.Winner(game)
	sh.printf("\nCongratulations! %s wins with %d points!\n", winner.Name, winner.Sheet.Total())
	if leaders := game.Leaders(); len(leaders) > 1 {
		sh.printf("(%d players tied for the top score; seat order breaks the tie.)\n", len(leaders))
	}
}
