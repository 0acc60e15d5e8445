package postgres

import "github.com/jackwardell/partypeople/internal/domain/user"

var userColumns = []string{"u.id", "u.first_name", "u.last_name", "u.username"}

type userTableModel struct {
	ID        int64   `db:"id"`
	FirstName string  `db:"first_name"`
	LastName  *string `db:"last_name"`
	Username  *string `db:"username"`
}

func newUserTableModel(u user.User) userTableModel {
	return userTableModel{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}
}

func (m userTableModel) toDomain() user.User {
	return user.User{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Username: m.Username}
}

const userUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    username = EXCLUDED.username,
    updated_at = NOW()`
