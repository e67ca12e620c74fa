package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

type fakeMatchFinder struct {
	matches  []*api.Match
	listErr  error
	createID string
	gotQuery string
	created  []string
}

func (f *fakeMatchFinder) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	f.gotQuery = query
	return f.matches, f.listErr
}

func (f *fakeMatchFinder) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.created = append(f.created, module)
	return f.createID, nil
}

func TestQuickMatch(t *testing.T) {
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "u1")

	tests := []struct {
		name        string
		finder      *fakeMatchFinder
		want        QuickMatchResponse
		wantCreated []string
	}{
		{
			name:   "JoinsExistingLobby",
			finder: &fakeMatchFinder{matches: []*api.Match{{MatchId: "m-open"}}},
			want:   QuickMatchResponse{MatchID: "m-open"},
		},
		{
			name:        "CreatesWhenNoneOpen",
			finder:      &fakeMatchFinder{createID: "m-new"},
			want:        QuickMatchResponse{MatchID: "m-new", IsNew: true},
			wantCreated: []string{MatchNameYacht},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := quickMatch(ctx, noopLogger{}, tt.finder)
			if err != nil {
				t.Fatalf("quickMatch: %v", err)
			}
			var got QuickMatchResponse
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("response %q: %v", out, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCreated, tt.finder.created); diff != "" {
				t.Errorf("created mismatch (-want +got):\n%s", diff)
			}
			if tt.finder.gotQuery != quickMatchQuery {
				t.Errorf("query = %q, want %q", tt.finder.gotQuery, quickMatchQuery)
			}
		})
	}
}

func TestQuickMatch_ListError(t *testing.T) {
	boom := errors.New("boom")
	_, err := quickMatch(context.Background(), noopLogger{}, &fakeMatchFinder{listErr: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
