package app

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"yachtdice/internal/domain"
	"yachtdice/internal/logging"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// Service contains the yacht use-cases operating on domain state.
// It holds no game state of its own, so one Service can drive many games.
type Service struct {
	rng    domain.Source
	logger runtime.Logger
}

// NewService constructs a Service with the provided dice source and logger.
// A nil rng falls back to a time-seeded default; a nil logger discards output.
func NewService(rng domain.Source, logger runtime.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{rng: rng, logger: logger}
}

// StartGame seats the named players in order and opens the first turn.
func (s *Service) StartGame(names []string) (*domain.Game, []Event, error) {
	if len(names) < MinPlayersToStartGame || len(names) > MaxPlayersToStartGame {
		return nil, nil, reject(ErrInvalidPlayerCount, nil, "need %d-%d players, got %d", MinPlayersToStartGame, MaxPlayersToStartGame, len(names))
	}
	cleaned := make([]string, len(names))
	for i, name := range names {
		cleaned[i] = strings.TrimSpace(name)
		if cleaned[i] == "" {
			return nil, nil, reject(ErrInvalidPlayerName, nil, "player %d has a blank name", i+1)
		}
	}

	game := domain.NewGame(uuid.NewString(), cleaned)
	s.logger.WithField("game_id", game.ID).Info("StartGame: %d players seated", len(cleaned))

	events := []Event{
		{Kind: EventGameStarted, Payload: GameStartedPayload{GameID: game.ID, Players: cleaned}},
		turnStarted(game),
	}
	return game, events, nil
}

// Roll rolls every unheld die. The first roll of a turn rolls all five dice.
func (s *Service) Roll(game *domain.Game) ([]Event, error) {
	if err := s.guard(game, "Roll", domain.TurnAwaitFirstRoll, domain.TurnDeciding); err != nil {
		return nil, err
	}
	turn := &game.Turn
	if turn.Rolls >= domain.MaxRolls {
		return nil, s.rejected(game, "Roll", reject(ErrNoRollsRemaining, nil, "all %d rolls used", domain.MaxRolls))
	}
	if turn.Phase == domain.TurnAwaitFirstRoll {
		turn.Held = domain.HoldMask{}
	}

	turn.Hand = domain.RollDice(turn.Hand, turn.Held, s.rng)
	turn.Rolls++
	turn.Phase = domain.TurnDeciding

	return []Event{{
		Kind: EventDiceRolled,
		Payload: DiceRolledPayload{
			Seat:           game.CurrentPlayer,
			Hand:           turn.Hand,
			Held:           turn.Held,
			RollsRemaining: turn.RollsRemaining(),
		},
	}}, nil
}

// ToggleHold flips the hold flag of the die at the 0-based index.
func (s *Service) ToggleHold(game *domain.Game, index int) ([]Event, error) {
	if err := s.guard(game, "ToggleHold", domain.TurnDeciding); err != nil {
		return nil, err
	}
	held, err := domain.ToggleHold(game.Turn.Held, index)
	if err != nil {
		return nil, s.rejected(game, "ToggleHold", reject(ErrInvalidIndex, err, "die index %d out of range 0-%d", index, domain.DiceCount-1))
	}
	game.Turn.Held = held

	return []Event{{
		Kind:    EventHoldToggled,
		Payload: HoldToggledPayload{Seat: game.CurrentPlayer, Index: index, Held: held},
	}}, nil
}

// FinishRolling stops rolling and exposes the legal options for the current hand.
func (s *Service) FinishRolling(game *domain.Game) ([]Event, error) {
	if err := s.guard(game, "FinishRolling", domain.TurnDeciding); err != nil {
		return nil, err
	}
	game.Turn.Phase = domain.TurnScoring

	return []Event{{
		Kind: EventRollingFinished,
		Payload: RollingFinishedPayload{
			Seat:    game.CurrentPlayer,
			Hand:    game.Turn.Hand,
			Options: domain.LegalOptions(game.Turn.Hand, &game.Current().Sheet),
		},
	}}, nil
}

// ScoreCategory records the current hand into category, closes the turn and
// advances the game to the next player.
func (s *Service) ScoreCategory(game *domain.Game, category domain.Category) ([]Event, error) {
	if err := s.guard(game, "ScoreCategory", domain.TurnScoring); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, s.rejected(game, "ScoreCategory", reject(ErrInvalidCategory, domain.ErrUnknownCategory, "unknown category %d", int(category)))
	}

	player := game.Current()
	score := domain.ScoreFor(category, game.Turn.Hand)
	if err := player.Sheet.Record(category, score); err != nil {
		if errors.Is(err, domain.ErrCategoryFilled) {
			return nil, s.rejected(game, "ScoreCategory", reject(ErrCategoryFilled, err, "%s already filled", category))
		}
		return nil, s.rejected(game, "ScoreCategory", reject(ErrInvalidCategory, err, "cannot record %s", category))
	}
	game.Turn.Phase = domain.TurnDone

	events := []Event{{
		Kind: EventCategoryScored,
		Payload: CategoryScoredPayload{
			Seat:     player.Seat,
			Category: category,
			Score:    score,
			Total:    player.Sheet.Total(),
		},
	}}

	game.AdvanceTurn()
	if game.IsFinished() {
		events = append(events, gameEnded(game))
		winner := game.Winner()
		s.logger.WithField("game_id", game.ID).Info("ScoreCategory: game ended, %s wins with %d", winner.Name, winner.Sheet.Total())
		return events, nil
	}
	return append(events, turnStarted(game)), nil
}

// IsGameOver reports whether the last round has been scored.
func (s *Service) IsGameOver(game *domain.Game) bool {
	return game.IsFinished()
}

// Winner returns the first player, in seat order, holding the highest total.
func (s *Service) Winner(game *domain.Game) *domain.Player {
	return game.Winner()
}

// ParseDieIndex converts a 1-based die number typed by a player into a 0-based index.
func ParseDieIndex(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, reject(ErrInvalidIndex, err, "%q is not a number", text)
	}
	if n < 1 || n > domain.DiceCount {
		return 0, reject(ErrInvalidIndex, nil, "die number %d out of range 1-%d", n, domain.DiceCount)
	}
	return n - 1, nil
}

// ParseCategory resolves a category wire key.
func ParseCategory(key string) (domain.Category, error) {
	c, err := domain.ParseCategory(strings.TrimSpace(key))
	if err != nil {
		return 0, reject(ErrInvalidCategory, err, "unknown category %q", key)
	}
	return c, nil
}

// ParseOptionChoice resolves a 1-based choice from a numbered option list.
func ParseOptionChoice(options []domain.Option, text string) (domain.Category, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, reject(ErrInvalidCategory, err, "%q is not a number", text)
	}
	if n < 1 || n > len(options) {
		return 0, reject(ErrInvalidCategory, nil, "choice %d out of range 1-%d", n, len(options))
	}
	return options[n-1].Category, nil
}

// guard rejects actions on ended games or outside the allowed turn phases.
func (s *Service) guard(game *domain.Game, action string, allowed ...domain.TurnPhase) error {
	if game.Phase == domain.PhaseEnded || game.IsFinished() {
		return s.rejected(game, action, reject(ErrGameOver, nil, "%s: game is over", action))
	}
	for _, phase := range allowed {
		if game.Turn.Phase == phase {
			return nil
		}
	}
	return s.rejected(game, action, reject(ErrActionNotAllowed, nil, "%s not allowed during %s", action, game.Turn.Phase))
}

func (s *Service) rejected(game *domain.Game, action string, r *Rejection) *Rejection {
	s.logger.WithFields(map[string]interface{}{
		"game_id": game.ID,
		"seat":    game.CurrentPlayer,
		"reason":  string(r.Reason),
	}).Debug("%s: rejected: %s", action, r.Message)
	return r
}

func turnStarted(game *domain.Game) Event {
	cur := game.Current()
	return Event{
		Kind:    EventTurnStarted,
		Payload: TurnStartedPayload{Round: game.Round, Seat: cur.Seat, Name: cur.Name},
	}
}

func gameEnded(game *domain.Game) Event {
	standings := make([]Standing, 0, len(game.Players))
	for _, p := range game.Standings() {
		standings = append(standings, Standing{Seat: p.Seat, Name: p.Name, Total: p.Sheet.Total()})
	}
	return Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{WinnerSeat: game.Winner().Seat, Standings: standings},
	}
}
