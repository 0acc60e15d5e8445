package digest

import (
	"fmt"
	"strings"

	"github.com/jackwardell/partypeople/internal/domain/sweepstake"
)

type SweepstakeContext struct {
	Categories []sweepstake.Category
}

func (sc SweepstakeContext) Message() string {
	parts := make([]string, 0, len(sc.Categories))
	for _, c := range sc.Categories {
		parts = append(parts, CategoryMessage(c))
	}
	return strings.Join(parts, "\n")
}

// CategoryMessage renders one award. Every line ends in a newline and the
// data line is left out when there is no data.
func CategoryMessage(c sweepstake.Category) string {
	participant := "TBD"
	if c.User != nil {
		participant = c.User.Tag()
	}
	teamName, teamFlag := "TBD", ""
	if c.Team != nil {
		teamName, teamFlag = c.Team.Name, c.Team.Flag()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 %s 🏆\n", c.Kind.Label())
	fmt.Fprintf(&b, "🎁 Prize: £%d 💰\n", c.PrizeMoney)
	fmt.Fprintf(&b, "👥 Participant: %s 🎉\n", participant)
	fmt.Fprintf(&b, "🤝 Team: %s %s\n", teamName, teamFlag)
	if c.Data != "" {
		fmt.Fprintf(&b, "📊 Data: %s ℹ️\n", c.Data)
	}
	return b.String()
}
