package drawfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackwardell/partypeople/internal/domain/draw"
)

func TestLoader_LoadDraws(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draws.json")
	content := `[[5012345678, [10, 14]], [1002, [768]]]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write draws file: %v", err)
	}

	got, err := NewLoader(path).LoadDraws(context.Background())
	if err != nil {
		t.Fatalf("load draws: %v", err)
	}

	want := []draw.Draw{
		{UserID: 5012345678, TeamID: 10},
		{UserID: 5012345678, TeamID: 14},
		{UserID: 1002, TeamID: 768},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected draws: got=%+v want=%+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d: got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestLoader_MissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.json")).LoadDraws(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := NewLoader(" ").LoadDraws(context.Background()); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParse_RejectsMalformedEntries(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"short entry":    `[[1]]`,
		"string user":    `[["jack", [10]]]`,
		"teams not list": `[[1, 10]]`,
		"fractional id":  `[[1, [10.5]]]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw)); err == nil {
				t.Fatalf("expected error for %s", raw)
			}
		})
	}
}

func TestParse_EmptyList(t *testing.T) {
	got, err := Parse([]byte(`[]`))
	if err != nil {
		t.Fatalf("parse empty list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no draws, got %+v", got)
	}
}
