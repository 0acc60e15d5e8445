package fixture

import (
	"testing"
	"time"
)

func TestPhaseOf(t *testing.T) {
	cases := map[Status]Phase{
		StatusToBeDefined:    PhaseNotStarted,
		StatusNotStarted:     PhaseNotStarted,
		StatusFirstHalf:      PhaseInProgress,
		StatusHalfTime:       PhaseInProgress,
		StatusSecondHalf:     PhaseInProgress,
		StatusExtraTime:      PhaseInProgress,
		StatusBreakTime:      PhaseInProgress,
		StatusPenalties:      PhaseInProgress,
		StatusLive:           PhaseInProgress,
		StatusFullTime:       PhaseFinished,
		StatusAfterExtraTime: PhaseFinished,
		StatusAfterPenalties: PhaseFinished,
		StatusTechnicalLoss:  PhaseFinished,
		StatusWalkOver:       PhaseFinished,
		StatusSuspended:      PhaseUnclassified,
		StatusInterrupted:    PhaseUnclassified,
		StatusPostponed:      PhaseUnclassified,
		StatusCancelled:      PhaseUnclassified,
		StatusAbandoned:      PhaseUnclassified,
		Status("XYZ"):        PhaseUnclassified,
	}
	for status, want := range cases {
		if got := PhaseOf(status); got != want {
			t.Fatalf("PhaseOf(%s)=%s want %s", status, got, want)
		}
	}

	for _, status := range FinishedStatuses() {
		if PhaseOf(status) != PhaseFinished {
			t.Fatalf("finished status %s not classified as finished", status)
		}
	}
}

func TestFixtureDecided(t *testing.T) {
	yes, no := true, false
	cases := []struct {
		name string
		home *bool
		away *bool
		want bool
	}{
		{name: "home win", home: &yes, away: &no, want: true},
		{name: "away win", home: &no, away: &yes, want: true},
		{name: "draw flags false", home: &no, away: &no, want: false},
		{name: "draw flags nil", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Fixture{HomeWinner: tc.home, AwayWinner: tc.away}
			if got := f.Decided(); got != tc.want {
				t.Fatalf("Decided()=%v want %v", got, tc.want)
			}
		})
	}
}

func TestFixtureKickOffDateUsesUTC(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	f := Fixture{KickOff: time.Date(2024, 6, 15, 1, 0, 0, 0, berlin)}
	want := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	if got := f.KickOffDate(); !got.Equal(want) {
		t.Fatalf("KickOffDate()=%s want %s", got, want)
	}
}

func TestFixtureValidate(t *testing.T) {
	valid := Fixture{ID: 1, HomeTeamID: 2, AwayTeamID: 3, KickOff: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	same := valid
	same.AwayTeamID = 2
	if err := same.Validate(); err == nil {
		t.Fatalf("expected error for identical teams")
	}
}
