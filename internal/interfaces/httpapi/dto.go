package httpapi

import (
	"time"

	"github.com/jackwardell/partypeople/internal/domain/digest"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type userDTO struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
}

type categoryDTO struct {
	Kind    string   `json:"kind"`
	Label   string   `json:"label"`
	Prize   int      `json:"prize"`
	Team    *teamDTO `json:"team,omitempty"`
	User    *userDTO `json:"user,omitempty"`
	Data    string   `json:"data,omitempty"`
	Message string   `json:"message"`
}

type sweepstakeDTO struct {
	Categories []categoryDTO `json:"categories"`
	Message    string        `json:"message"`
}

type fixtureDTO struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Phase     string    `json:"phase"`
	KickOff   time.Time `json:"kick_off"`
	Round     string    `json:"round"`
	Venue     string    `json:"venue"`
	City      string    `json:"city"`
	HomeTeam  teamDTO   `json:"home_team"`
	AwayTeam  teamDTO   `json:"away_team"`
	HomeUser  userDTO   `json:"home_user"`
	AwayUser  userDTO   `json:"away_user"`
	HomeGoals *int      `json:"home_goals,omitempty"`
	AwayGoals *int      `json:"away_goals,omitempty"`
	Winner    *teamDTO  `json:"winner,omitempty"`
	Message   string    `json:"message"`
}

type dateDTO struct {
	Date     string       `json:"date"`
	Fixtures []fixtureDTO `json:"fixtures"`
	Message  string       `json:"message"`
}

type userContextDTO struct {
	User           userDTO      `json:"user"`
	Teams          []teamDTO    `json:"teams"`
	NotStarted     []fixtureDTO `json:"not_started"`
	InProgress     []fixtureDTO `json:"in_progress"`
	Finished       []fixtureDTO `json:"finished"`
	TeamsMessage   string       `json:"teams_message"`
	MatchesMessage string       `json:"matches_message"`
	LiveMessage    string       `json:"live_matches_message"`
	PastMessage    string       `json:"past_matches_message"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, Code: t.Code, Flag: t.Flag()}
}

func userToPublicDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}
}

func sweepstakeToDTO(sc digest.SweepstakeContext) sweepstakeDTO {
	items := make([]categoryDTO, 0, len(sc.Categories))
	for _, c := range sc.Categories {
		item := categoryDTO{
			Kind:    string(c.Kind),
			Label:   c.Kind.Label(),
			Prize:   c.PrizeMoney,
			Data:    c.Data,
			Message: digest.CategoryMessage(c),
		}
		if c.Team != nil {
			t := teamToDTO(*c.Team)
			item.Team = &t
		}
		if c.User != nil {
			u := userToPublicDTO(*c.User)
			item.User = &u
		}
		items = append(items, item)
	}
	return sweepstakeDTO{Categories: items, Message: sc.Message()}
}

func fixtureToDTO(fc digest.FixtureContext) fixtureDTO {
	f := fc.Fixture
	out := fixtureDTO{
		ID:        f.ID,
		Status:    string(f.Status),
		Phase:     fc.Phase().String(),
		KickOff:   f.KickOff,
		Round:     f.Round,
		Venue:     f.VenueName,
		City:      f.VenueCity,
		HomeTeam:  teamToDTO(fc.HomeTeam),
		AwayTeam:  teamToDTO(fc.AwayTeam),
		HomeUser:  userToPublicDTO(fc.HomeUser),
		AwayUser:  userToPublicDTO(fc.AwayUser),
		HomeGoals: f.HomeGoals,
		AwayGoals: f.AwayGoals,
		Message:   fc.Message(),
	}
	if fc.WinningTeam != nil {
		w := teamToDTO(*fc.WinningTeam)
		out.Winner = &w
	}
	return out
}

func fixturesToDTO(items []digest.FixtureContext) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, fc := range items {
		out = append(out, fixtureToDTO(fc))
	}
	return out
}

func dateToDTO(dc digest.DateContext, view string) dateDTO {
	message := dc.Message()
	switch view {
	case "morning":
		message = dc.MorningMessage()
	case "evening":
		message = dc.EveningMessage()
	}
	return dateDTO{
		Date:     dc.Date.Format(dateLayout),
		Fixtures: fixturesToDTO(dc.Fixtures),
		Message:  message,
	}
}

func userToDTO(uc digest.UserContext) userContextDTO {
	teams := make([]teamDTO, 0, len(uc.Teams))
	for _, t := range uc.Teams {
		teams = append(teams, teamToDTO(t))
	}
	return userContextDTO{
		User:           userToPublicDTO(uc.User),
		Teams:          teams,
		NotStarted:     fixturesToDTO(uc.NotStarted()),
		InProgress:     fixturesToDTO(uc.InProgress()),
		Finished:       fixturesToDTO(uc.Finished()),
		TeamsMessage:   uc.TeamsMessage(),
		MatchesMessage: uc.MatchesMessage(),
		LiveMessage:    uc.LiveMatchesMessage(),
		PastMessage:    uc.PastMatchesMessage(),
	}
}
