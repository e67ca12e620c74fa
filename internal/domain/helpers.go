package domain

// LowestAvailableSeat returns the lowest index of an empty seat, or -1 when all seats are taken.
func LowestAvailableSeat(seats *[MaxPlayers]string) int {
	for i, userID := range seats {
		if userID == "" {
			return i
		}
	}
	return -1
}

// OccupiedSeats returns the user IDs of taken seats in seat order.
func OccupiedSeats(seats *[MaxPlayers]string) []string {
	out := make([]string, 0, MaxPlayers)
	for _, userID := range seats {
		if userID != "" {
			out = append(out, userID)
		}
	}
	return out
}

// LabelPayload holds the values advertised in a match label.
type LabelPayload struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from the seats and the game phase.
// Seats only count as open while the match sits in the lobby.
func ComputeLabel(seats *[MaxPlayers]string, phase Phase) LabelPayload {
	open := 0
	if phase == PhaseLobby {
		open = MaxPlayers - len(OccupiedSeats(seats))
	}
	return LabelPayload{Open: open, Game: "yacht", Phase: string(phase)}
}
