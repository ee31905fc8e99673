package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
	tx   repository.TxRunner
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx repository.TxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx}
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	page.Normalize()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, u := range list {
		out.Items = append(out.Items, dto.UserFromEntity(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Create crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe. Con actor vacío (CLI) se omite el chequeo de rol.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && !actor.IsService() {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(user)
	return &out, nil
}

// Update cambia nombre, rol, estado o contraseña. Un admin no puede quitarse el rol ni
// desactivarse, y siempre debe quedar al menos un admin activo.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Role != nil && !entity.ValidRole(*in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Role)
	}
	if in.Status != nil && *in.Status != entity.UserStatusActive && *in.Status != entity.UserStatusInactive {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
	}
	if in.Password != nil && len(*in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}

	var updated *entity.User
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		user, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		wasActiveAdmin := user.Role == entity.RoleAdmin && user.Status == entity.UserStatusActive

		if in.Name != nil {
			user.Name = strings.TrimSpace(*in.Name)
		}
		if in.Role != nil {
			user.Role = *in.Role
		}
		if in.Status != nil {
			user.Status = *in.Status
		}
		if in.Password != nil {
			hash, err := auth.HashPassword(*in.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		stillActiveAdmin := user.Role == entity.RoleAdmin && user.Status == entity.UserStatusActive

		if wasActiveAdmin && !stillActiveAdmin {
			if user.ID == actor.UserID {
				return fmt.Errorf("%w: un administrador no puede quitarse el rol ni desactivarse", domain.ErrForbidden)
			}
			admins, err := tx.Users.CountActiveAdmins(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return fmt.Errorf("%w: debe quedar al menos un administrador activo", domain.ErrConflict)
			}
		}
		user.UpdatedAt = time.Now().UTC()
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.UserFromEntity(updated)
	return &out, nil
}

// EnsureAdmin crea el administrador inicial si el email todavía no existe.
// Devuelve created=false cuando ya estaba registrado (no modifica su contraseña).
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	existing, err := uc.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, entity.Actor{}, dto.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
