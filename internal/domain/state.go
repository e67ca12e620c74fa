package domain

import "sort"

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can take seats.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the state where turns are being played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after the last round was scored.
	PhaseEnded Phase = "ended"
)

// TurnPhase is the step of the current player's turn.
type TurnPhase string

const (
	// TurnAwaitFirstRoll accepts only a roll.
	TurnAwaitFirstRoll TurnPhase = "await_first_roll"
	// TurnDeciding accepts another roll (while budget remains), hold toggles or finishing.
	TurnDeciding TurnPhase = "deciding"
	// TurnScoring accepts only a category choice.
	TurnScoring TurnPhase = "scoring"
	// TurnDone closes the turn.
	TurnDone TurnPhase = "done"
)

// Player is a seated participant and their score sheet.
type Player struct {
	Name  string
	Seat  int // 0-based seat order
	Sheet ScoreSheet
}

// TurnState is the ephemeral state of one player's turn.
type TurnState struct {
	Hand  Hand
	Held  HoldMask
	Rolls int
	Phase TurnPhase
}

// RollsRemaining returns the unused roll budget.
func (t TurnState) RollsRemaining() int {
	return MaxRolls - t.Rolls
}

// Game is the authoritative state of a single game.
type Game struct {
	ID            string
	Phase         Phase
	Round         int
	CurrentPlayer int
	Players       []*Player
	Turn          TurnState
	TurnsPlayed   int
}

// NewGame seats players in the given order and opens the first turn.
func NewGame(id string, names []string) *Game {
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = &Player{Name: name, Seat: i}
	}
	g := &Game{
		ID:      id,
		Phase:   PhasePlaying,
		Round:   1,
		Players: players,
	}
	g.ResetTurn()
	return g
}

// ResetTurn clears the dice, holds and roll count for a new turn.
func (g *Game) ResetTurn() {
	g.Turn = TurnState{Phase: TurnAwaitFirstRoll}
}

// Current returns the player whose turn it is.
func (g *Game) Current() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentPlayer]
}

// AdvanceTurn rotates to the next seat, opening a new round when the rotation wraps.
func (g *Game) AdvanceTurn() {
	g.TurnsPlayed++
	g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
	if g.CurrentPlayer == 0 {
		g.Round++
	}
	if g.IsFinished() {
		g.Phase = PhaseEnded
		g.Turn = TurnState{Phase: TurnDone}
		return
	}
	g.ResetTurn()
}

// IsFinished reports whether every round has been played.
func (g *Game) IsFinished() bool {
	return g.Round > MaxRounds
}

// Winner returns the first player, in seat order, holding the highest total.
func (g *Game) Winner() *Player {
	var best *Player
	for _, p := range g.Players {
		if best == nil || p.Sheet.Total() > best.Sheet.Total() {
			best = p
		}
	}
	return best
}

// Leaders returns every player tied at the highest total, in seat order.
func (g *Game) Leaders() []*Player {
	w := g.Winner()
	if w == nil {
		return nil
	}
	var out []*Player
	for _, p := range g.Players {
		if p.Sheet.Total() == w.Sheet.Total() {
			out = append(out, p)
		}
	}
	return out
}

// Standings orders players by total, highest first; ties keep seat order.
func (g *Game) Standings() []*Player {
	out := append([]*Player(nil), g.Players...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sheet.Total() > out[j].Sheet.Total() })
	return out
}
