// Package drawfile loads the sweepstake draw from a JSON file of
// [user_id, [team_id, ...]] pairs.
package drawfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/jackwardell/partypeople/internal/domain/draw"
)

var decoder = sonic.Config{UseInt64: true}.Froze()

type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: strings.TrimSpace(path)}
}

// LoadDraws returns one draw per (user, team) pair in file order.
func (l *Loader) LoadDraws(ctx context.Context) ([]draw.Draw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.path == "" {
		return nil, fmt.Errorf("draws file path is empty")
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read draws file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) ([]draw.Draw, error) {
	var entries [][]any
	if err := decoder.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode draws: %w", err)
	}

	out := make([]draw.Draw, 0, len(entries))
	for i, entry := range entries {
		if len(entry) != 2 {
			return nil, fmt.Errorf("draw entry %d: want [user_id, [team_ids]], got %d elements", i, len(entry))
		}
		userID, ok := asInt64(entry[0])
		if !ok {
			return nil, fmt.Errorf("draw entry %d: user id %v is not an integer", i, entry[0])
		}
		teamIDs, ok := entry[1].([]any)
		if !ok {
			return nil, fmt.Errorf("draw entry %d: team ids must be a list", i)
		}
		for _, rawTeamID := range teamIDs {
			teamID, ok := asInt64(rawTeamID)
			if !ok {
				return nil, fmt.Errorf("draw entry %d: team id %v is not an integer", i, rawTeamID)
			}
			out = append(out, draw.Draw{UserID: userID, TeamID: teamID})
		}
	}
	return out, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
