package draw

import "fmt"

// Draw assigns a team to a user. One user holds many teams.
type Draw struct {
	UserID int64
	TeamID int64
}

func (d Draw) Validate() error {
	if d.UserID <= 0 {
		return fmt.Errorf("draw user id is required")
	}
	if d.TeamID <= 0 {
		return fmt.Errorf("draw team id is required")
	}

	return nil
}
