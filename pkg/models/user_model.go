package models

import "time"

type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleMerchant      Role = "MERCHANT"
	RoleSupport       Role = "SUPPORT"
)

// User maps to table `users`. Accounts are managed elsewhere; the screening engine only reads them.
type User struct {
	ID        int64
	Username  string
	Name      string
	Role      Role
	Locked    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
