package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

type User struct {
	Model
	UpdatedAt time.Time `db:"updated_at"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Name      string    `db:"name"`
	Role      Role      `db:"role"`
}

// CanManage reports whether the role may mutate inventories, schemas
// and items. Read access is open to every authenticated user.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

func (u *User) CanManage() bool {
	return u.Role.CanManage()
}
