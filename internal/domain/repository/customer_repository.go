package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// CustomerFilter criterios de búsqueda de clientes.
type CustomerFilter struct {
	Search string // coincide con nombre, email o documento
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	// List devuelve la página pedida y el total de coincidencias.
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, int, error)
}
