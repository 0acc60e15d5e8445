package digest

import (
	"time"

	"github.com/itbasis/go-clock"
)

const (
	dayLabelLayout = "Mon Jan 02"
	kickOffLayout  = "15:04:05"
)

// Calendar supplies "now" for relative day labels and the zone times are shown in.
type Calendar struct {
	Clock    clock.Clock
	Location *time.Location
}

func NewCalendar(clk clock.Clock, loc *time.Location) Calendar {
	if clk == nil {
		clk = clock.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Clock: clk, Location: loc}
}

func (c Calendar) normalized() Calendar {
	return NewCalendar(c.Clock, c.Location)
}

// Today is the current UTC date at midnight. Location only affects the
// rendered kick off time.
func (c Calendar) Today() time.Time {
	c = c.normalized()
	return civilDate(c.Clock.Now().UTC())
}

// DayLabel renders "Today", "Tomorrow" or a "Mon Jan 02" date. Only the
// year, month and day of day are compared.
func (c Calendar) DayLabel(day time.Time) string {
	d := civilDate(day)
	today := c.Today()
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.Format(dayLabelLayout)
	}
}

func (c Calendar) kickOff(t time.Time) (clockTime, dayLabel string) {
	c = c.normalized()
	return t.In(c.Location).Format(kickOffLayout), c.DayLabel(t.UTC())
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
