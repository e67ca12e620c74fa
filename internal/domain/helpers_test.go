package domain

import (
	"encoding/json"
	"testing"
)

func TestLowestAvailableSeat(t *testing.T) {
	tests := []struct {
		name  string
		seats [MaxPlayers]string
		want  int
	}{
		{name: "all empty", seats: [MaxPlayers]string{"", "", "", ""}, want: 0},
		{name: "first taken", seats: [MaxPlayers]string{"u1", "", "", ""}, want: 1},
		{name: "gap reused", seats: [MaxPlayers]string{"u1", "", "u3", ""}, want: 1},
		{name: "full", seats: [MaxPlayers]string{"u1", "u2", "u3", "u4"}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LowestAvailableSeat(&tt.seats); got != tt.want {
				t.Fatalf("LowestAvailableSeat() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeLabel(t *testing.T) {
	seats := [MaxPlayers]string{"a", "b", "", ""}
	label := ComputeLabel(&seats, PhaseLobby)
	if label.Open != 2 || label.Game != "yacht" || label.Phase != string(PhaseLobby) {
		t.Fatalf("unexpected label: %+v", label)
	}

	label = ComputeLabel(&seats, PhasePlaying)
	if label.Open != 0 {
		t.Fatalf("expected no open seats while playing, got %d", label.Open)
	}
	if _, err := json.Marshal(label); err != nil {
		t.Fatalf("label should marshal: %v", err)
	}
}

func TestOccupiedSeats(t *testing.T) {
	seats := [MaxPlayers]string{"", "u2", "", "u4"}
	got := OccupiedSeats(&seats)
	if len(got) != 2 || got[0] != "u2" || got[1] != "u4" {
		t.Fatalf("OccupiedSeats() = %v", got)
	}
}
