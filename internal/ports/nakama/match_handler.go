package nakama

import (
	"context"
	"database/sql"
	"math/rand"

	"yachtdice/internal/app"
	"yachtdice/internal/config"
	"yachtdice/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Error codes sent with OpGameError.
const (
	errCodeRejected  = 400
	errCodeForbidden = 403
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats          [domain.MaxPlayers]string   `json:"seats"`            // user IDs, empty string means the seat is free
	Names          map[string]string           `json:"names"`            // user ID -> display name
	OwnerSeat      int                         `json:"owner_seat"`       // seat allowed to start the game
	Tick           int64                       `json:"tick"`             // last processed tick
	LobbySinceTick int64                       `json:"lobby_since_tick"` // tick the lobby last saw activity
	Roster         []string                    `json:"roster"`           // game seat -> user ID for the running game
	Presences      map[string]runtime.Presence `json:"-"`                // connected users by user ID
	App            *app.Service                `json:"-"`
	Game           *domain.Game                `json:"-"` // nil while in the lobby
	Config         config.GameConfig           `json:"-"`
}

func newMatchState(cfg config.GameConfig, service *app.Service) *MatchState {
	return &MatchState{
		Names:     make(map[string]string),
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App:       service,
		Config:    cfg,
	}
}

func (ms *MatchState) GetOpenSeatsCount() int {
	return domain.MaxPlayers - ms.GetOccupiedSeatCount()
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(domain.OccupiedSeats(&ms.Seats))
}

// seatOf returns the match seat of userID or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserID := range ms.Seats {
		if seatUserID != "" && seatUserID == userID {
			return i
		}
	}
	return -1
}

// gameSeatOf returns the game seat of userID in the running game or -1.
func (ms *MatchState) gameSeatOf(userID string) int {
	for i, rosterID := range ms.Roster {
		if rosterID == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) isConnected(userID string) bool {
	_, ok := ms.Presences[userID]
	return userID != "" && ok
}

func (ms *MatchState) displayName(userID string) string {
	if name, ok := ms.Names[userID]; ok && name != "" {
		return name
	}
	return userID
}

// phase reports the label phase of the match.
func (ms *MatchState) phase() domain.Phase {
	if ms.Game == nil {
		return domain.PhaseLobby
	}
	return ms.Game.Phase
}

// findFirstConnectedSeat returns the first seat whose occupant is connected, or -1.
func findFirstConnectedSeat(ms *MatchState) int {
	for i, userID := range ms.Seats {
		if ms.isConnected(userID) {
			return i
		}
	}
	return -1
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.FromRuntimeEnv(env)
	if err != nil {
		logger.Error("MatchInit: Invalid runtime config: %v", err)
		return nil, 0, ""
	}

	var rng domain.Source
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	state := newMatchState(cfg, app.NewService(rng, logger.WithField("match_id", matchID)))

	label, err := labelToJSON(domain.ComputeLabel(&state.Seats, state.phase()))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, cfg.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if matchState.seatOf(userID) >= 0 {
		return matchState, true, ""
	}
	if matchState.Game != nil {
		return matchState, false, "Game in progress"
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		return matchState, false, "Match full"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		matchState.Names[userID] = p.GetUsername()

		if seat := matchState.seatOf(userID); seat >= 0 {
			logger.Info("MatchJoin: User %s rejoined seat %d.", userID, seat)
			continue
		}

		seat := domain.LowestAvailableSeat(&matchState.Seats)
		if seat < 0 || matchState.Game != nil {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", userID)
			continue
		}
		matchState.Seats[seat] = userID
		matchState.LobbySinceTick = tick
		logger.Debug("MatchJoin: User %s took seat %d.", userID, seat)
	}

	if !matchState.isConnected(seatUser(matchState, matchState.OwnerSeat)) {
		matchState.OwnerSeat = findFirstConnectedSeat(matchState)
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
// Seats in a running game are kept so the player's sheet survives a rejoin.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}
		if matchState.Game == nil {
			matchState.Seats[seat] = ""
			delete(matchState.Names, userID)
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
		} else {
			logger.Info("MatchLeave: User %s disconnected from seat %d mid-game.", userID, seat)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected players.")
		return nil
	}

	if !matchState.isConnected(seatUser(matchState, matchState.OwnerSeat)) {
		matchState.OwnerSeat = findFirstConnectedSeat(matchState)
		logger.Debug("MatchLeave: Owner set to seat %d.", matchState.OwnerSeat)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpRoll, OpToggleHold, OpFinishRolling, OpScoreCategory:
			mh.handleAction(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.Game == nil && matchState.Config.IdleTerminateTicks > 0 &&
		tick-matchState.LobbySinceTick >= matchState.Config.IdleTerminateTicks {
		logger.Info("MatchLoop: Terminating lobby idle since tick %d.", matchState.LobbySinceTick)
		return nil
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, errCodeRejected, app.ReasonActionNotAllowed, "game already running")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, errCodeForbidden, app.ReasonActionNotAllowed, "only the match owner can start the game")
		return
	}

	roster := domain.OccupiedSeats(&state.Seats)
	names := make([]string, len(roster))
	for i, userID := range roster {
		names[i] = state.displayName(userID)
	}

	game, events, err := state.App.StartGame(names)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeRejected, app.ReasonOf(err), err.Error())
		return
	}

	state.Game = game
	state.Roster = roster
	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game %s started with %d players.", game.ID, len(roster))
}

// handleAction routes a turn action from the current seat into the app service.
func (mh *matchHandler) handleAction(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		logger.Warn("handleAction: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, errCodeRejected, app.ReasonActionNotAllowed, "game not started")
		return
	}

	gameSeat := state.gameSeatOf(senderID)
	if gameSeat < 0 || gameSeat != state.Game.CurrentPlayer {
		logger.Debug("handleAction: User %s (seat %d) acted out of turn (current %d).", senderID, gameSeat, state.Game.CurrentPlayer)
		mh.sendError(state, dispatcher, logger, senderID, errCodeForbidden, app.ReasonNotYourTurn, app.ErrNotYourTurn.Message)
		return
	}

	request := &structpb.Struct{}
	if len(msg.GetData()) > 0 {
		if err := proto.Unmarshal(msg.GetData(), request); err != nil {
			logger.Warn("handleAction: Invalid payload from %s: %v", senderID, err)
			mh.sendError(state, dispatcher, logger, senderID, errCodeRejected, app.ReasonActionNotAllowed, "malformed payload")
			return
		}
	}

	var events []app.Event
	var err error
	switch msg.GetOpCode() {
	case OpRoll:
		events, err = state.App.Roll(state.Game)
	case OpToggleHold:
		var index int
		index, err = decodeIndex(request)
		if err == nil {
			events, err = state.App.ToggleHold(state.Game, index)
		}
	case OpFinishRolling:
		events, err = state.App.FinishRolling(state.Game)
	case OpScoreCategory:
		var category domain.Category
		category, err = app.ParseCategory(request.GetFields()["category"].GetStringValue())
		if err == nil {
			events, err = state.App.ScoreCategory(state.Game, category)
		}
	}
	if err != nil {
		logger.Debug("handleAction: User %s (seat %d) opcode %d rejected: %v", senderID, gameSeat, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeRejected, app.ReasonOf(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// decodeIndex reads the 0-based die index of a toggle request.
func decodeIndex(request *structpb.Struct) (int, error) {
	v, ok := request.GetFields()["index"]
	if !ok {
		return 0, app.ErrInvalidIndex
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != float64(int(n.NumberValue)) {
		return 0, app.ErrInvalidIndex
	}
	return int(n.NumberValue), nil
}

// broadcastEvent encodes an app event and sends it to every presence.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, payload, err := eventToProto(ev)
	if err != nil {
		logger.Error("Failed to convert event %v: %v", ev.Kind, err)
		return
	}
	bytes, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}

	if ev.Kind == app.EventGameEnded {
		mh.returnToLobby(state, dispatcher, logger)
	}
}

// returnToLobby clears the finished game and frees the seats of disconnected players.
func (mh *matchHandler) returnToLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Game = nil
	state.Roster = nil
	for i, userID := range state.Seats {
		if userID != "" && !state.isConnected(userID) {
			state.Seats[i] = ""
			delete(state.Names, userID)
			logger.Debug("returnToLobby: Freed seat %d of disconnected user %s.", i, userID)
		}
	}
	state.LobbySinceTick = state.Tick
	state.OwnerSeat = findFirstConnectedSeat(state)
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var snap *app.Snapshot
	if state.Game != nil {
		s := state.App.DisplayState(state.Game)
		snap = &s
	}
	payload, err := snapshotToProto(state, snap)
	if err != nil {
		logger.Error("Failed to build match state: %v", err)
		return
	}
	bytes, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal match state: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast match state: %v", err)
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, reason app.Reason, message string) {
	payload, err := errorToProto(code, reason, message)
	if err != nil {
		logger.Error("Failed to build game error: %v", err)
		return
	}
	bytes, err := proto.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send game error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := labelToJSON(domain.ComputeLabel(&state.Seats, state.phase()))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func seatUser(state *MatchState, seat int) string {
	if seat < 0 || seat >= len(state.Seats) {
		return ""
	}
	return state.Seats[seat]
}
