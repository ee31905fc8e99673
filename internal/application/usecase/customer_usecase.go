package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	tx   repository.TxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx repository.TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx}
}

// Create registra un cliente (cualquier usuario autenticado).
func (uc *CustomerUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		TaxID:     strings.TrimSpace(in.TaxID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		return tx.Customers.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	out := dto.CustomerFromEntity(customer)
	return &out, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.CustomerFromEntity(c)
	return &out, nil
}

// Update aplica cambios parciales.
func (uc *CustomerUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	var updated *entity.Customer
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		c, err := tx.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		setIf(&c.Name, in.Name)
		setIf(&c.Email, in.Email)
		setIf(&c.Phone, in.Phone)
		setIf(&c.Address, in.Address)
		setIf(&c.TaxID, in.TaxID)
		c.UpdatedAt = time.Now().UTC()
		if err := tx.Customers.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.CustomerFromEntity(updated)
	return &out, nil
}

// Delete elimina un cliente (solo admin). Sus ventas se conservan como venta de mostrador.
func (uc *CustomerUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		return tx.Customers.Delete(ctx, id)
	})
}

// List busca clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.Normalize()
	list, total, err := uc.repo.List(ctx, repository.CustomerFilter{Search: search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, c := range list {
		out.Items = append(out.Items, dto.CustomerFromEntity(c))
	}
	return out, nil
}
