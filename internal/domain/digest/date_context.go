package digest

import (
	"slices"
	"strings"
	"time"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
)

// DateContext holds the fixtures kicking off on one UTC calendar day.
type DateContext struct {
	Date     time.Time
	Fixtures []FixtureContext

	calendar Calendar
}

// NewDateContext keeps only fixtures whose UTC kick off falls on day and
// orders them by kick off, preserving input order on equal times.
func NewDateContext(day time.Time, fixtures []FixtureContext, cal Calendar) DateContext {
	date := civilDate(day)
	kept := make([]FixtureContext, 0, len(fixtures))
	for _, fc := range fixtures {
		if fc.Fixture.KickOffDate().Equal(date) {
			kept = append(kept, fc)
		}
	}
	slices.SortStableFunc(kept, func(a, b FixtureContext) int {
		return a.Fixture.KickOff.Compare(b.Fixture.KickOff)
	})
	return DateContext{Date: date, Fixtures: kept, calendar: cal.normalized()}
}

func (dc DateContext) Message() string {
	return dc.render(func(fc FixtureContext) string { return fc.Message() })
}

// MorningMessage renders every fixture as a preview.
func (dc DateContext) MorningMessage() string {
	return dc.render(func(fc FixtureContext) string { return fc.NotStartedMessage() })
}

// EveningMessage renders results for finished fixtures and the usual message otherwise.
func (dc DateContext) EveningMessage() string {
	return dc.render(func(fc FixtureContext) string {
		if fc.Phase() == fixture.PhaseFinished {
			return fc.FinishedMessage()
		}
		return fc.Message()
	})
}

func (dc DateContext) render(fn func(FixtureContext) string) string {
	if len(dc.Fixtures) == 0 {
		return "No fixtures " + dc.calendar.DayLabel(dc.Date)
	}
	return joinFixtures(dc.Fixtures, fn)
}

func joinFixtures(fixtures []FixtureContext, fn func(FixtureContext) string) string {
	parts := make([]string, 0, len(fixtures))
	for _, fc := range fixtures {
		parts = append(parts, fn(fc))
	}
	return strings.Join(parts, "\n\n")
}
