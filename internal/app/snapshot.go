package app

import "yachtdice/internal/domain"

// PlayerView is the read-only view of one player's sheet.
type PlayerView struct {
	Seat    int                 `json:"seat"`
	Name    string              `json:"name"`
	Entries []domain.SheetEntry `json:"entries"`
	Total   int                 `json:"total"`
}

// Snapshot is everything a shell needs to render the game.
type Snapshot struct {
	GameID         string           `json:"game_id"`
	Phase          domain.Phase     `json:"phase"`
	Round          int              `json:"round"`
	CurrentSeat    int              `json:"current_seat"`
	CurrentName    string           `json:"current_name"`
	TurnPhase      domain.TurnPhase `json:"turn_phase"`
	Hand           domain.Hand      `json:"hand"`
	Held           domain.HoldMask  `json:"held"`
	RollsUsed      int              `json:"rolls_used"`
	RollsRemaining int              `json:"rolls_remaining"`
	Options        []domain.Option  `json:"options,omitempty"`
	Players        []PlayerView     `json:"players"`
	GameOver       bool             `json:"game_over"`
}

// DisplayState returns a snapshot of game for rendering. It never mutates game.
func (s *Service) DisplayState(game *domain.Game) Snapshot {
	snap := Snapshot{
		GameID:         game.ID,
		Phase:          game.Phase,
		Round:          game.Round,
		CurrentSeat:    game.CurrentPlayer,
		TurnPhase:      game.Turn.Phase,
		Hand:           game.Turn.Hand,
		Held:           game.Turn.Held,
		RollsUsed:      game.Turn.Rolls,
		RollsRemaining: game.Turn.RollsRemaining(),
		GameOver:       game.IsFinished(),
	}
	if cur := game.Current(); cur != nil && !snap.GameOver {
		snap.CurrentName = cur.Name
		if game.Turn.Hand.Rolled() {
			snap.Options = domain.LegalOptions(game.Turn.Hand, &cur.Sheet)
		}
	}
	snap.Players = make([]PlayerView, 0, len(game.Players))
	for _, p := range game.Players {
		snap.Players = append(snap.Players, PlayerView{
			Seat:    p.Seat,
			Name:    p.Name,
			Entries: p.Sheet.Entries(),
			Total:   p.Sheet.Total(),
		})
	}
	return snap
}
