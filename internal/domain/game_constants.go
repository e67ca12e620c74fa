package domain

const (
	// DiceCount is the number of dice in a hand.
	DiceCount = 5
	// DieFaces is the number of faces on each die.
	DieFaces = 6
	// MaxRolls is the roll budget of a single turn.
	MaxRolls = 3
	// MaxRounds is the number of rounds in a game; one category is filled per round.
	MaxRounds = 12
	// MinPlayers and MaxPlayers bound the seated players of a game.
	MinPlayers = 2
	MaxPlayers = 4
)
