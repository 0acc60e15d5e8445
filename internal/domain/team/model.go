package team

import "fmt"

// WhiteFlag is shown for teams missing from the flag table.
const WhiteFlag = "🏳️"

// Team is a national side taking part in the tournament.
type Team struct {
	ID   int64
	Name string
	Code string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

func (t Team) Flag() string {
	if flag, ok := flagsByName[t.Name]; ok {
		return flag
	}
	return WhiteFlag
}

func (t Team) NameAndFlag() string {
	return t.Name + " " + t.Flag()
}

// FlagNameFlag renders "🇪🇸 Spain 🇪🇸".
func (t Team) FlagNameFlag() string {
	flag := t.Flag()
	return flag + " " + t.Name + " " + flag
}
