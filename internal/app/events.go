package app

import "yachtdice/internal/domain"

// EventKind identifies emitted game events for dispatch.
type EventKind string

const (
	EventGameStarted     EventKind = "game_started"
	EventTurnStarted     EventKind = "turn_started"
	EventDiceRolled      EventKind = "dice_rolled"
	EventHoldToggled     EventKind = "hold_toggled"
	EventRollingFinished EventKind = "rolling_finished"
	EventCategoryScored  EventKind = "category_scored"
	EventGameEnded       EventKind = "game_ended"
)

// Event is a game event with a typed payload.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	GameID  string
	Players []string
}

type TurnStartedPayload struct {
	Round int
	Seat  int
	Name  string
}

type DiceRolledPayload struct {
	Seat           int
	Hand           domain.Hand
	Held           domain.HoldMask
	RollsRemaining int
}

type HoldToggledPayload struct {
	Seat  int
	Index int
	Held  domain.HoldMask
}

type RollingFinishedPayload struct {
	Seat    int
	Hand    domain.Hand
	Options []domain.Option
}

type CategoryScoredPayload struct {
	Seat     int
	Category domain.Category
	Score    int
	Total    int
}

// Standing is one row of the final results.
type Standing struct {
	Seat  int
	Name  string
	Total int
}

type GameEndedPayload struct {
	WinnerSeat int
	Standings  []Standing
}
