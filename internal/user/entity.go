// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Role      string    `db:"role"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
