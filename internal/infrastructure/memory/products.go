package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct{ v *view }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return forbidden()
		}
		if p.Stock < 0 {
			return domain.ErrInsufficientStock
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		r.v.record(st, entity.AuditActionInsert, "products", p.ID, nil, toProductRow(*p))
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la tx ya tiene el lock global.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return forbidden()
		}
		old, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.products {
			if id != p.ID && other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		updated := *p
		updated.Stock = old.Stock
		updated.CreatedAt = old.CreatedAt
		st.products[p.ID] = updated
		r.v.record(st, entity.AuditActionUpdate, "products", p.ID, toProductRow(old), toProductRow(updated))
		return nil
	})
}

func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	stock := 0
	err := r.v.do(func(st *state) error {
		old, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if old.Stock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		updated := old
		updated.Stock += delta
		updated.UpdatedAt = r.v.s.now()
		st.products[id] = updated
		stock = updated.Stock
		r.v.record(st, entity.AuditActionUpdate, "products", id, toProductRow(old), toProductRow(updated))
		return nil
	})
	return stock, err
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	total := 0
	err := r.v.do(func(st *state) error {
		q := strings.ToLower(strings.TrimSpace(f.Search))
		var list []entity.Product
		for _, p := range st.products {
			if q != "" && !containsAny(q, p.SKU, p.Name) {
				continue
			}
			if f.Active != nil && p.Active != *f.Active {
				continue
			}
			list = append(list, p)
		}
		sortProducts(list)
		total = len(list)
		for _, p := range page(list, f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, total, err
}

func (r *ProductRepo) ListLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.do(func(st *state) error {
		var list []entity.Product
		for _, p := range st.products {
			if p.Active && p.Stock <= threshold {
				list = append(list, p)
			}
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Stock != list[j].Stock {
				return list[i].Stock < list[j].Stock
			}
			return list[i].Name < list[j].Name
		})
		for _, p := range page(list, limit, 0) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func sortProducts(list []entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].SKU < list[j].SKU
	})
}
