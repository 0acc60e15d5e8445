package sweepstake

import (
	"fmt"
	"strings"

	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

// Kind identifies a sweepstake category. The value doubles as the prize map key.
type Kind string

const (
	KindFirstPlace         Kind = "first"
	KindSecondPlace        Kind = "second"
	KindWorstTeam          Kind = "worst"
	KindFilthiestTeam      Kind = "filthiest"
	KindBiggestLoss        Kind = "biggest_loss"
	KindYoungestGoalscorer Kind = "youngest"
	KindOldestGoalscorer   Kind = "oldest"
)

// Kinds lists every category in message order.
func Kinds() []Kind {
	return []Kind{
		KindFirstPlace,
		KindSecondPlace,
		KindWorstTeam,
		KindFilthiestTeam,
		KindBiggestLoss,
		KindYoungestGoalscorer,
		KindOldestGoalscorer,
	}
}

func (k Kind) Label() string {
	switch k {
	case KindFirstPlace:
		return "First place"
	case KindSecondPlace:
		return "Second place"
	case KindWorstTeam:
		return "Worst team"
	case KindFilthiestTeam:
		return "Filthiest team"
	case KindBiggestLoss:
		return "Biggest loss"
	case KindYoungestGoalscorer:
		return "Youngest goalscorer"
	case KindOldestGoalscorer:
		return "Oldest goalscorer"
	default:
		return string(k)
	}
}

// Category is one computed award. Team and User stay nil for placeholders.
type Category struct {
	Kind       Kind
	PrizeMoney int
	Team       *team.Team
	User       *user.User
	Data       string
}

// Prizes maps each kind to its prize in whole pounds.
type Prizes map[Kind]int

func DefaultPrizes() Prizes {
	return Prizes{
		KindFirstPlace:         20,
		KindSecondPlace:        10,
		KindWorstTeam:          5,
		KindFilthiestTeam:      10,
		KindBiggestLoss:        5,
		KindYoungestGoalscorer: 5,
		KindOldestGoalscorer:   5,
	}
}

// PrizesWithOverrides applies configured amounts on top of DefaultPrizes.
func PrizesWithOverrides(overrides map[string]int64) (Prizes, error) {
	prizes := DefaultPrizes()
	for key, amount := range overrides {
		kind := Kind(strings.ToLower(strings.TrimSpace(key)))
		if _, ok := prizes[kind]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPrizeKind, key)
		}
		if amount < 0 {
			return nil, fmt.Errorf("prize for %s must be >= 0", kind)
		}
		prizes[kind] = int(amount)
	}
	return prizes, nil
}

func (p Prizes) For(kind Kind) int {
	return p[kind]
}
