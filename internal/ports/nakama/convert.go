package nakama

import (
	"fmt"

	"yachtdice/internal/app"
	"yachtdice/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// eventToProto maps an app event to its opcode and wire payload.
func eventToProto(ev app.Event) (int64, *structpb.Struct, error) {
	var opCode int64
	var fields map[string]interface{}

	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		opCode = OpGameStarted
		fields = map[string]interface{}{
			"game_id": p.GameID,
			"players": stringsToList(p.Players),
		}
	case app.TurnStartedPayload:
		opCode = OpTurnStarted
		fields = map[string]interface{}{
			"round": p.Round,
			"seat":  p.Seat,
			"name":  p.Name,
		}
	case app.DiceRolledPayload:
		opCode = OpDiceRolled
		fields = map[string]interface{}{
			"seat":            p.Seat,
			"hand":            handToList(p.Hand),
			"held":            heldToList(p.Held),
			"rolls_remaining": p.RollsRemaining,
		}
	case app.HoldToggledPayload:
		opCode = OpHoldToggled
		fields = map[string]interface{}{
			"seat":  p.Seat,
			"index": p.Index,
			"held":  heldToList(p.Held),
		}
	case app.RollingFinishedPayload:
		opCode = OpRollingFinished
		fields = map[string]interface{}{
			"seat":    p.Seat,
			"hand":    handToList(p.Hand),
			"options": optionsToList(p.Options),
		}
	case app.CategoryScoredPayload:
		opCode = OpCategoryScored
		fields = map[string]interface{}{
			"seat":     p.Seat,
			"category": p.Category.Key(),
			"score":    p.Score,
			"total":    p.Total,
		}
	case app.GameEndedPayload:
		opCode = OpGameEnded
		standings := make([]interface{}, 0, len(p.Standings))
		for _, s := range p.Standings {
			standings = append(standings, map[string]interface{}{
				"seat":  s.Seat,
				"name":  s.Name,
				"total": s.Total,
			})
		}
		fields = map[string]interface{}{
			"winner_seat": p.WinnerSeat,
			"standings":   standings,
		}
	default:
		return 0, nil, fmt.Errorf("unknown event payload %T for %s", ev.Payload, ev.Kind)
	}

	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return 0, nil, fmt.Errorf("encode %s: %w", ev.Kind, err)
	}
	return opCode, msg, nil
}

// snapshotToProto encodes the lobby seats and, when a game runs, its display state.
func snapshotToProto(state *MatchState, snap *app.Snapshot) (*structpb.Struct, error) {
	seats := make([]interface{}, 0, domain.MaxPlayers)
	for i, userID := range state.Seats {
		seats = append(seats, map[string]interface{}{
			"seat":      i,
			"user_id":   userID,
			"name":      state.displayName(userID),
			"is_owner":  userID != "" && i == state.OwnerSeat,
			"connected": state.isConnected(userID),
		})
	}
	fields := map[string]interface{}{
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"seats":      seats,
	}

	if snap != nil {
		players := make([]interface{}, 0, len(snap.Players))
		for _, p := range snap.Players {
			entries := make(map[string]interface{}, len(p.Entries))
			for _, e := range p.Entries {
				if e.Filled {
					entries[e.Category.Key()] = e.Score
				}
			}
			players = append(players, map[string]interface{}{
				"seat":    p.Seat,
				"user_id": state.Roster[p.Seat],
				"name":    p.Name,
				"scores":  entries,
				"total":   p.Total,
			})
		}
		fields["game"] = map[string]interface{}{
			"game_id":         snap.GameID,
			"phase":           string(snap.Phase),
			"round":           snap.Round,
			"current_seat":    snap.CurrentSeat,
			"turn_phase":      string(snap.TurnPhase),
			"hand":            handToList(snap.Hand),
			"held":            heldToList(snap.Held),
			"rolls_remaining": snap.RollsRemaining,
			"options":         optionsToList(snap.Options),
			"players":         players,
		}
	}

	return structpb.NewStruct(fields)
}

// errorToProto builds the private game error payload.
func errorToProto(code int, reason app.Reason, message string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"code":    code,
		"reason":  string(reason),
		"message": message,
	})
}

// labelToJSON encodes the advertised match label.
func labelToJSON(label domain.LabelPayload) (string, error) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"open":  label.Open,
		"game":  label.Game,
		"phase": label.Phase,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func handToList(hand domain.Hand) []interface{} {
	out := make([]interface{}, len(hand))
	for i, v := range hand {
		out[i] = v
	}
	return out
}

func heldToList(held domain.HoldMask) []interface{} {
	out := make([]interface{}, len(held))
	for i, v := range held {
		out[i] = v
	}
	return out
}

func optionsToList(options []domain.Option) []interface{} {
	out := make([]interface{}, 0, len(options))
	for _, o := range options {
		out = append(out, map[string]interface{}{
			"category": o.Category.Key(),
			"name":     o.Category.String(),
			"score":    o.Score,
		})
	}
	return out
}

func stringsToList(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
