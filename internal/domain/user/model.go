package user

import (
	"fmt"
	"strconv"
)

// User is a chat member taking part in the sweepstake.
type User struct {
	ID        int64
	FirstName string
	LastName  *string
	Username  *string
}

func (u User) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("user id is required")
	}
	if u.FirstName == "" {
		return fmt.Errorf("user first name is required")
	}

	return nil
}

// Tag is a markdown mention that notifies the user in Telegram.
func (u User) Tag() string {
	return "[" + u.FirstName + "](tg://user?id=" + strconv.FormatInt(u.ID, 10) + ")"
}
