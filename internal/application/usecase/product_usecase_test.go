package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

func TestProductUseCase_CreateYDuplicado(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewProductUseCase(s.Products(), s, zerolog.Nop())
	ctx := context.Background()

	p, err := uc.Create(ctx, adminActor, dto.CreateProductRequest{SKU: "SKU-2", Name: "Té", Price: decimal.RequireFromString("4.499"), Stock: 5})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, "4.5", p.Price.String())

	_, err = uc.Create(ctx, adminActor, dto.CreateProductRequest{SKU: "SKU-2", Name: "Otro", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, staffActor, dto.CreateProductRequest{SKU: "SKU-3", Name: "x", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, adminActor, dto.CreateProductRequest{SKU: "SKU-4", Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_SoftDeleteOcultaAStaff(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewProductUseCase(s.Products(), s, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, adminActor, "p-1"))

	_, err := uc.GetByID(ctx, staffActor, "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := uc.GetByID(ctx, adminActor, "p-1")
	require.NoError(t, err)
	assert.False(t, p.Active)

	// staff no ve inactivos aunque pida active=false
	list, err := uc.List(ctx, staffActor, "", ptr(false), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	list, err = uc.List(ctx, adminActor, "", nil, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestProductUseCase_AdjustStock(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewProductUseCase(s.Products(), s, zerolog.Nop())
	ctx := context.Background()

	p, err := uc.AdjustStock(ctx, adminActor, "p-1", dto.AdjustStockRequest{Delta: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	_, err = uc.AdjustStock(ctx, adminActor, "p-1", dto.AdjustStockRequest{Delta: -16})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.AdjustStock(ctx, staffActor, "p-1", dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.AdjustStock(ctx, adminActor, "nope", dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_UpdateSKUDuplicado(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewProductUseCase(s.Products(), s, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, adminActor, dto.CreateProductRequest{SKU: "SKU-2", Name: "Té", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)

	_, err = uc.Update(ctx, adminActor, "p-1", dto.UpdateProductRequest{SKU: ptr("SKU-2")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.Update(ctx, adminActor, "p-1", dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("12.5"))})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Stock, "Update no toca el stock")
}
