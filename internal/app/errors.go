package app

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable rejection code.
type Reason string

const (
	ReasonInvalidPlayerCount Reason = "invalid_player_count"
	ReasonInvalidPlayerName  Reason = "invalid_player_name"
	ReasonInvalidIndex       Reason = "invalid_index"
	ReasonInvalidCategory    Reason = "invalid_category"
	ReasonCategoryFilled     Reason = "category_filled"
	ReasonNoRollsRemaining   Reason = "no_rolls_remaining"
	ReasonActionNotAllowed   Reason = "action_not_allowed"
	ReasonGameOver           Reason = "game_over"
	ReasonNotYourTurn        Reason = "not_your_turn"
)

// Rejection reports a player action that was refused. The game is left unchanged.
type Rejection struct {
	Reason  Reason
	Message string
	Cause   error
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	return r.Message
}

// Unwrap returns the underlying domain error, if any.
func (r *Rejection) Unwrap() error {
	return r.Cause
}

// Is matches any rejection with the same reason.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

var (
	ErrInvalidPlayerCount = &Rejection{Reason: ReasonInvalidPlayerCount, Message: "player count out of range"}
	ErrInvalidPlayerName  = &Rejection{Reason: ReasonInvalidPlayerName, Message: "player name is blank"}
	ErrInvalidIndex       = &Rejection{Reason: ReasonInvalidIndex, Message: "die index out of range"}
	ErrInvalidCategory    = &Rejection{Reason: ReasonInvalidCategory, Message: "invalid category"}
	ErrCategoryFilled     = &Rejection{Reason: ReasonCategoryFilled, Message: "category already filled"}
	ErrNoRollsRemaining   = &Rejection{Reason: ReasonNoRollsRemaining, Message: "no rolls remaining"}
	ErrActionNotAllowed   = &Rejection{Reason: ReasonActionNotAllowed, Message: "action not allowed in current turn phase"}
	ErrGameOver           = &Rejection{Reason: ReasonGameOver, Message: "game is over"}
	ErrNotYourTurn        = &Rejection{Reason: ReasonNotYourTurn, Message: "not your turn"}
)

// reject builds a rejection with the reason of base and a detailed message.
func reject(base *Rejection, cause error, format string, args ...any) *Rejection {
	return &Rejection{
		Reason:  base.Reason,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// ReasonOf extracts the rejection reason from err, or "" when err is not a rejection.
func ReasonOf(err error) Reason {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return ""
}
