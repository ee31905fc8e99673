package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa el perfil de un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, staff
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin informa si el usuario tiene rol admin.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// ValidRole informa si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

// Actor identifica a quien ejecuta una operación. Viaja hasta la base de datos
// (app.user_id / app.user_role) para los triggers de auditoría y las políticas RLS.
// Un Actor vacío corresponde al rol de servicio (CLI, migraciones).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin informa si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsService informa si el actor es el rol de servicio (sin usuario).
func (a Actor) IsService() bool { return a.UserID == "" && a.Role == "" }
