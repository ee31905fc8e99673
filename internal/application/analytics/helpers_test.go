package analytics

import (
	"context"
	"fmt"
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
	fixedNow   = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
)

type saleLine struct {
	productID string
	sku       string
	qty       int
	price     string
}

// newStore siembra ventas en marzo 2026 (y una de febrero).
//
//	s1 staff-1 15/03 completed A x2 @10 = 20
//	s2 staff-2 15/03 completed B x1 @5  = 5
//	s3 staff-1 02/03 pending   A x1 @10 = 10
//	s4 staff-1 10/03 cancelled B x10 @5 = 50 (no cuenta)
//	s5 staff-2 20/02 completed A x1 @10 = 10
func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	ctx := context.Background()
	for _, u := range []entity.User{
		{ID: "admin-1", Email: "admin@x.com", Name: "Admin", Role: entity.RoleAdmin},
		{ID: "staff-1", Email: "ana@x.com", Name: "Ana", Role: entity.RoleStaff},
		{ID: "staff-2", Email: "beto@x.com", Name: "Beto", Role: entity.RoleStaff},
	} {
		u := u
		u.Status = entity.UserStatusActive
		require.NoError(t, s.Users().Create(ctx, &u))
	}
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-a", SKU: "A", Name: "Producto A", Price: decimal.NewFromInt(10), Stock: 3, Active: true}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-b", SKU: "B", Name: "Producto B", Price: decimal.NewFromInt(5), Stock: 50, Active: true}))

	add := func(n int64, issuer, status string, at time.Time, line saleLine) {
		id := fmt.Sprintf("s%d", n)
		price := decimal.RequireFromString(line.price)
		total := price.Mul(decimal.NewFromInt(int64(line.qty)))
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
			ID: id, Number: n, IssuerID: issuer, Status: status,
			Subtotal: total, TaxRate: decimal.Zero, TaxTotal: decimal.Zero, Total: total,
			CreatedAt: at, UpdatedAt: at,
		}))
		require.NoError(t, s.Sales().CreateItem(ctx, &entity.SaleItem{
			ID: id + "-1", SaleID: id, ProductID: line.productID, ProductSKU: line.sku,
			ProductName: "Producto " + line.sku, Quantity: line.qty, UnitPrice: price,
		}))
	}
	add(1, "staff-1", entity.SaleStatusCompleted, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), saleLine{"p-a", "A", 2, "10"})
	add(2, "staff-2", entity.SaleStatusCompleted, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), saleLine{"p-b", "B", 1, "5"})
	add(3, "staff-1", entity.SaleStatusPending, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), saleLine{"p-a", "A", 1, "10"})
	add(4, "staff-1", entity.SaleStatusCancelled, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), saleLine{"p-b", "B", 10, "5"})
	add(5, "staff-2", entity.SaleStatusCompleted, time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC), saleLine{"p-a", "A", 1, "10"})
	return s
}
