package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
)

var (
	adminActor = entity.Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	staffActor = entity.Actor{UserID: "staff-1", Role: entity.RoleStaff}
)

// newStore crea un store con un admin, un staff y un producto activo (SKU-1, stock 10).
func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: adminActor.UserID, Email: "admin@tienda.com", Name: "Admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: staffActor.UserID, Email: "staff@tienda.com", Name: "Staff", Role: entity.RoleStaff, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-1", SKU: "SKU-1", Name: "Café", Price: decimal.RequireFromString("10.00"), Stock: 10, Active: true, CreatedAt: now, UpdatedAt: now}))
	return s
}

func ptr[T any](v T) *T { return &v }
