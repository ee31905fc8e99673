package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List devuelve la página pedida y el total de usuarios.
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
	// CountActiveAdmins cuenta administradores activos (evita dejar el sistema sin admin).
	CountActiveAdmins(ctx context.Context) (int, error)
}
