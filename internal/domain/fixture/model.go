package fixture

import (
	"fmt"
	"time"
)

// Status is the provider's short match status code.
type Status string

const (
	StatusToBeDefined    Status = "TBD"
	StatusNotStarted     Status = "NS"
	StatusFirstHalf      Status = "1H"
	StatusHalfTime       Status = "HT"
	StatusSecondHalf     Status = "2H"
	StatusExtraTime      Status = "ET"
	StatusBreakTime      Status = "BT"
	StatusPenalties      Status = "P"
	StatusSuspended      Status = "SUSP"
	StatusInterrupted    Status = "INT"
	StatusFullTime       Status = "FT"
	StatusAfterExtraTime Status = "AET"
	StatusAfterPenalties Status = "PEN"
	StatusPostponed      Status = "PST"
	StatusCancelled      Status = "CANC"
	StatusAbandoned      Status = "ABD"
	StatusTechnicalLoss  Status = "AWD"
	StatusWalkOver       Status = "WO"
	StatusLive           Status = "LIVE"
)

// Phase groups statuses into the buckets messages are rendered from.
type Phase int

const (
	PhaseUnclassified Phase = iota
	PhaseNotStarted
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unclassified"
	}
}

// PhaseOf classifies a status. Suspended, interrupted, postponed, cancelled,
// abandoned and unknown codes are PhaseUnclassified.
func PhaseOf(status Status) Phase {
	switch status {
	case StatusToBeDefined, StatusNotStarted:
		return PhaseNotStarted
	case StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusExtraTime, StatusBreakTime, StatusPenalties, StatusLive:
		return PhaseInProgress
	case StatusFullTime, StatusAfterExtraTime, StatusAfterPenalties, StatusTechnicalLoss, StatusWalkOver:
		return PhaseFinished
	default:
		return PhaseUnclassified
	}
}

// FinishedStatuses lists the codes PhaseOf maps to PhaseFinished.
func FinishedStatuses() []Status {
	return []Status{StatusFullTime, StatusAfterExtraTime, StatusAfterPenalties, StatusTechnicalLoss, StatusWalkOver}
}

// Fixture is one scheduled match. KickOff is always UTC.
type Fixture struct {
	ID         int64
	Status     Status
	HomeTeamID int64
	AwayTeamID int64
	HomeTeam   string
	AwayTeam   string
	HomeGoals  *int
	AwayGoals  *int
	HomeWinner *bool
	AwayWinner *bool
	KickOff    time.Time
	VenueCity  string
	VenueName  string
	Round      string

	HalfTimeHome  *int
	HalfTimeAway  *int
	FullTimeHome  *int
	FullTimeAway  *int
	ExtraTimeHome *int
	ExtraTimeAway *int
	PenaltiesHome *int
	PenaltiesAway *int
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture teams are required")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture home and away team must differ")
	}
	if f.KickOff.IsZero() {
		return fmt.Errorf("fixture kick off is required")
	}

	return nil
}

func (f Fixture) Phase() Phase {
	return PhaseOf(f.Status)
}

func (f Fixture) HomeWon() bool { return isTrue(f.HomeWinner) }
func (f Fixture) AwayWon() bool { return isTrue(f.AwayWinner) }

// Decided reports whether exactly one side is flagged as winner.
func (f Fixture) Decided() bool {
	return f.HomeWon() != f.AwayWon()
}

func (f Fixture) ForceHomeGoals() int { return deref(f.HomeGoals) }
func (f Fixture) ForceAwayGoals() int { return deref(f.AwayGoals) }

func (f Fixture) HasPenalties() bool {
	return f.PenaltiesHome != nil && f.PenaltiesAway != nil
}

// KickOffDate is the UTC civil date of kick off at midnight.
func (f Fixture) KickOffDate() time.Time {
	k := f.KickOff.UTC()
	return time.Date(k.Year(), k.Month(), k.Day(), 0, 0, 0, 0, time.UTC)
}

func isTrue(v *bool) bool {
	return v != nil && *v
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// GoalsFor returns the goals scored by teamID, or nil when it did not play.
func (f Fixture) GoalsFor(teamID int64) *int {
	switch teamID {
	case f.HomeTeamID:
		return f.HomeGoals
	case f.AwayTeamID:
		return f.AwayGoals
	default:
		return nil
	}
}

func (f Fixture) PenaltiesFor(teamID int64) *int {
	switch teamID {
	case f.HomeTeamID:
		return f.PenaltiesHome
	case f.AwayTeamID:
		return f.PenaltiesAway
	default:
		return nil
	}
}
