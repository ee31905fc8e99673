package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo.
type ProductFilter struct {
	Search string // coincide con SKU o nombre
	Active *bool  // nil = todos
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock y devuelve el nuevo valor.
	// Devuelve domain.ErrInsufficientStock si el resultado sería negativo.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	// ListLowStock productos activos con stock <= threshold, menor stock primero.
	ListLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error)
}
