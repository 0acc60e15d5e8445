package sweepstake

import (
	"fmt"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

// Compute builds every category in Kinds order. The first failing category aborts.
func Compute(s Snapshot, prizes Prizes) ([]Category, error) {
	steps := []struct {
		kind Kind
		fn   func(Snapshot, int) (Category, error)
	}{
		{KindFirstPlace, FirstPlace},
		{KindSecondPlace, SecondPlace},
		{KindWorstTeam, WorstTeam},
		{KindFilthiestTeam, FilthiestTeam},
		{KindBiggestLoss, BiggestLoss},
		{KindYoungestGoalscorer, YoungestGoalscorer},
		{KindOldestGoalscorer, OldestGoalscorer},
	}

	out := make([]Category, 0, len(steps))
	for _, step := range steps {
		c, err := step.fn(s, prizes.For(step.kind))
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", step.kind, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// FirstPlace is decided outside the bot; only the prize is shown.
func FirstPlace(_ Snapshot, prize int) (Category, error) {
	return Category{Kind: KindFirstPlace, PrizeMoney: prize}, nil
}

func SecondPlace(_ Snapshot, prize int) (Category, error) {
	return Category{Kind: KindSecondPlace, PrizeMoney: prize}, nil
}

type worstRecord struct {
	team          team.Team
	losses        int
	goalsConceded int
}

// WorstTeam picks the single team that tops both losses and goals conceded.
// Any other outcome is ErrAmbiguousResult.
func WorstTeam(s Snapshot, prize int) (Category, error) {
	if len(s.Teams) == 0 {
		return Category{}, fmt.Errorf("%w: no teams", ErrInsufficientData)
	}

	teams := s.teamsByID()
	records := make(map[int64]*worstRecord, len(s.Teams))
	for _, t := range s.Teams {
		records[t.ID] = &worstRecord{team: t}
	}

	for _, f := range s.knownFixtures(teams) {
		home, away := records[f.HomeTeamID], records[f.AwayTeamID]
		home.goalsConceded += f.ForceAwayGoals()
		away.goalsConceded += f.ForceHomeGoals()
		if f.AwayWon() {
			home.losses++
		}
		if f.HomeWon() {
			away.losses++
		}
	}

	mostLosses := maxSet(s.Teams, func(id int64) int { return records[id].losses })
	mostConceded := maxSet(s.Teams, func(id int64) int { return records[id].goalsConceded })

	var worst []int64
	for _, id := range mostLosses {
		if _, ok := mostConceded[id]; ok {
			worst = append(worst, id)
		}
	}
	if len(worst) != 1 {
		return Category{}, fmt.Errorf("%w: %d teams share most losses and goals conceded", ErrAmbiguousResult, len(worst))
	}

	rec := records[worst[0]]
	return categoryFor(s, KindWorstTeam, prize, rec.team,
		fmt.Sprintf("Lost %d games and conceded %d goals", rec.losses, rec.goalsConceded))
}

// maxSet scans teams from a floor of zero. A strictly greater value resets
// the set; an equal one joins it.
func maxSet(teams []team.Team, value func(id int64) int) map[int64]struct{} {
	best := 0
	set := map[int64]struct{}{}
	for _, t := range teams {
		v := value(t.ID)
		switch {
		case v > best:
			best = v
			set = map[int64]struct{}{t.ID: {}}
		case v == best:
			set[t.ID] = struct{}{}
		}
	}
	return set
}

type cardRecord struct {
	team          team.Team
	yellow        int
	yellowThenRed int
	red           int
}

func (r cardRecord) score() int {
	return r.yellow + 2*r.yellowThenRed + 3*r.red
}

// FilthiestTeam weights yellows 1, second yellows 2 and straight reds 3.
// The first team in name order wins a tie.
func FilthiestTeam(s Snapshot, prize int) (Category, error) {
	if len(s.Teams) == 0 {
		return Category{}, fmt.Errorf("%w: no teams", ErrInsufficientData)
	}

	records := make(map[int64]*cardRecord, len(s.Teams))
	for _, t := range s.Teams {
		records[t.ID] = &cardRecord{team: t}
	}
	for _, p := range s.Players {
		rec, ok := records[p.TeamID]
		if !ok {
			continue
		}
		rec.yellow += p.ForceYellowCards()
		rec.yellowThenRed += p.ForceYellowThenRedCards()
		rec.red += p.ForceRedCards()
	}

	filthiest := records[s.Teams[0].ID]
	for _, t := range s.Teams[1:] {
		if rec := records[t.ID]; rec.score() > filthiest.score() {
			filthiest = rec
		}
	}

	return categoryFor(s, KindFilthiestTeam, prize, filthiest.team,
		fmt.Sprintf("Players given %d yellow cards, %d yellows then reds and %d red cards",
			filthiest.yellow, filthiest.yellowThenRed, filthiest.red))
}

// BiggestLoss scans each team's defeats in team then kick off order. A defeat
// takes over when both its goal margin and its total goals are at least the
// current best, starting from zero.
func BiggestLoss(s Snapshot, prize int) (Category, error) {
	teams := s.teamsByID()
	losses := make(map[int64][]fixture.Fixture, len(s.Teams))
	for _, f := range s.knownFixtures(teams) {
		if f.HomeWon() {
			losses[f.AwayTeamID] = append(losses[f.AwayTeamID], f)
		}
		if f.AwayWon() {
			losses[f.HomeTeamID] = append(losses[f.HomeTeamID], f)
		}
	}

	var (
		bestDiff, bestTotal int
		loser               *team.Team
		worst               fixture.Fixture
	)
	for i := range s.Teams {
		for _, f := range losses[s.Teams[i].ID] {
			hg, ag := f.ForceHomeGoals(), f.ForceAwayGoals()
			diff, total := abs(hg-ag), hg+ag
			if diff >= bestDiff && total >= bestTotal {
				bestDiff, bestTotal = diff, total
				loser = &s.Teams[i]
				worst = f
			}
		}
	}
	if loser == nil {
		return Category{}, fmt.Errorf("%w: no defeats recorded", ErrInsufficientData)
	}

	winnerName, winnerGoals := teams[worst.AwayTeamID].Name, worst.ForceAwayGoals()
	if worst.HomeWon() {
		winnerName, winnerGoals = teams[worst.HomeTeamID].Name, worst.ForceHomeGoals()
	}
	loserName, loserGoals := teams[worst.AwayTeamID].Name, worst.ForceAwayGoals()
	if worst.AwayWon() {
		loserName, loserGoals = teams[worst.HomeTeamID].Name, worst.ForceHomeGoals()
	}

	return categoryFor(s, KindBiggestLoss, prize, *loser,
		fmt.Sprintf("%s thrashed %s %d-%d", winnerName, loserName, winnerGoals, loserGoals))
}

func YoungestGoalscorer(s Snapshot, prize int) (Category, error) {
	return goalscorerCategory(s, KindYoungestGoalscorer, prize, func(candidate, best player.Player) bool {
		return candidate.DateOfBirth.After(best.DateOfBirth)
	})
}

func OldestGoalscorer(s Snapshot, prize int) (Category, error) {
	return goalscorerCategory(s, KindOldestGoalscorer, prize, func(candidate, best player.Player) bool {
		return candidate.DateOfBirth.Before(best.DateOfBirth)
	})
}

// goalscorerCategory keeps the first goalscorer unless a later one is strictly better.
func goalscorerCategory(s Snapshot, kind Kind, prize int, better func(candidate, best player.Player) bool) (Category, error) {
	teams := s.teamsByID()

	var best *player.Player
	for i := range s.Players {
		p := &s.Players[i]
		if !p.IsGoalscorer() {
			continue
		}
		if _, ok := teams[p.TeamID]; !ok {
			continue
		}
		if best == nil || better(*p, *best) {
			best = p
		}
	}
	if best == nil {
		return Category{}, fmt.Errorf("%w: no goalscorers", ErrInsufficientData)
	}

	return categoryFor(s, kind, prize, teams[best.TeamID],
		fmt.Sprintf("%s born on %s is a goalscorer", best.FullName(), best.DateOfBirth.Format("2006-01-02")))
}

func categoryFor(s Snapshot, kind Kind, prize int, t team.Team, data string) (Category, error) {
	owner, err := s.Owners.Owner(t.ID)
	if err != nil {
		return Category{}, err
	}
	return Category{
		Kind:       kind,
		PrizeMoney: prize,
		Team:       &t,
		User:       userPtr(owner),
		Data:       data,
	}, nil
}

func userPtr(u user.User) *user.User {
	return &u
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
