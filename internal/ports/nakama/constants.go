package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameYacht is the authoritative match handler name registered with Nakama.
	MatchNameYacht = "yacht_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame     int64 = 1
	OpRoll          int64 = 2
	OpToggleHold    int64 = 3 // {"index": 0-4}
	OpFinishRolling int64 = 4
	OpScoreCategory int64 = 5 // {"category": "full_house"}

	// Server -> Client events
	OpMatchState      int64 = 100
	OpGameStarted     int64 = 101
	OpTurnStarted     int64 = 102
	OpDiceRolled      int64 = 103
	OpHoldToggled     int64 = 104
	OpRollingFinished int64 = 105
	OpCategoryScored  int64 = 106
	OpGameEnded       int64 = 107
	OpGameError       int64 = 108 // sent privately
)
