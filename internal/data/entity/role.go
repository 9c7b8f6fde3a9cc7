package entity

import "time"

const (
	RoleCustomer = "customer"
	RoleCompany  = "company"
	RoleAdmin    = "admin"
)

// DefaultRoles are seeded at startup in this order.
var DefaultRoles = []string{RoleCustomer, RoleCompany, RoleAdmin}

type Role struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
