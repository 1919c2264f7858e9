package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | manager | bodeguero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
