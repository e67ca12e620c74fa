package app

import "yachtdice/internal/domain"

// MinPlayersToStartGame and MaxPlayersToStartGame bound the names accepted by StartGame.
const (
	MinPlayersToStartGame = domain.MinPlayers
	MaxPlayersToStartGame = domain.MaxPlayers
)
