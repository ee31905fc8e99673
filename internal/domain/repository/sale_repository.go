package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleFilter filtros del historial de ventas. Los campos vacíos no filtran.
type SaleFilter struct {
	Status     string
	CustomerID string
	IssuerID   string
	Search     string // número de factura, nombre de cliente o notas
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// SaleSummary agregados del conjunto filtrado (ignora Limit/Offset).
type SaleSummary struct {
	Count       int
	TotalAmount decimal.Decimal // suma de totales, excluye canceladas
	Pending     int
	Completed   int
	Cancelled   int
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// NextNumber reserva el siguiente consecutivo de factura.
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// UpdateStatus cambia de from a to solo si la venta sigue en from; si otra transacción
	// la cambió antes devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time) error
	// List devuelve cabeceras (sin líneas), más recientes primero.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	Summarize(ctx context.Context, filter SaleFilter) (SaleSummary, error)
}
