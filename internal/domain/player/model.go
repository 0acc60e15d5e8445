package player

import (
	"fmt"
	"time"
)

// Player is a squad member with season totals. Nil counters mean the provider sent nothing.
type Player struct {
	ID                 int64
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	TeamID             int64
	YellowCards        *int
	YellowThenRedCards *int
	RedCards           *int
	Goals              *int
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("player date of birth is required")
	}

	return nil
}

func (p Player) ForceYellowCards() int        { return deref(p.YellowCards) }
func (p Player) ForceYellowThenRedCards() int { return deref(p.YellowThenRedCards) }
func (p Player) ForceRedCards() int           { return deref(p.RedCards) }
func (p Player) ForceGoals() int              { return deref(p.Goals) }

func (p Player) IsGoalscorer() bool {
	return p.Goals != nil && *p.Goals != 0
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
