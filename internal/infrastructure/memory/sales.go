package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas en memoria.
type SaleRepo struct{ v *view }

func (r *SaleRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		st.saleSeq++
		n = st.saleSeq
		return nil
	})
	return n, err
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() && s.IssuerID != r.v.actor.UserID {
			return forbidden()
		}
		if _, ok := st.users[s.IssuerID]; !ok {
			return domain.ErrNotFound
		}
		if s.CustomerID != "" {
			if _, ok := st.customers[s.CustomerID]; !ok {
				return domain.ErrNotFound
			}
		}
		for _, other := range st.sales {
			if other.ID == s.ID || other.Number == s.Number {
				return domain.ErrDuplicate
			}
		}
		row := *s
		row.Items = nil
		st.sales[s.ID] = row
		r.v.record(st, entity.AuditActionInsert, "sales", s.ID, nil, toSaleRow(row))
		return nil
	})
}

// CreateItem calcula total como lo hace la columna generada.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	return r.v.do(func(st *state) error {
		sale, ok := st.sales[it.SaleID]
		if !ok || !r.v.canSeeSale(sale) {
			return forbidden()
		}
		if it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		row := *it
		row.Total = row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
		st.items[it.SaleID] = append(st.items[it.SaleID], row)
		r.v.record(st, entity.AuditActionInsert, "sale_items", it.ID, nil, toSaleItemRow(row))
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok || !r.v.canSeeSale(s) {
			return nil
		}
		items := append([]entity.SaleItem(nil), st.items[id]...)
		sort.Slice(items, func(i, j int) bool {
			if items[i].ProductName != items[j].ProductName {
				return items[i].ProductName < items[j].ProductName
			}
			return items[i].ID < items[j].ID
		})
		for i := range items {
			s.Items = append(s.Items, &items[i])
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time) error {
	return r.v.do(func(st *state) error {
		old, ok := st.sales[id]
		if !ok || !r.v.canSeeSale(old) {
			return domain.ErrNotFound
		}
		if !entity.ValidSaleStatus(to) {
			return domain.ErrInvalidInput
		}
		if old.Status != from {
			return fmt.Errorf("%w: la venta %s ya no está %s", domain.ErrConflict, id, from)
		}
		updated := old
		updated.Status = to
		updated.UpdatedAt = updatedAt
		st.sales[id] = updated
		r.v.record(st, entity.AuditActionUpdate, "sales", id, toSaleRow(old), toSaleRow(updated))
		return nil
	})
}

func (r *SaleRepo) filter(st *state, f repository.SaleFilter) []entity.Sale {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	var list []entity.Sale
	for _, s := range st.sales {
		if !r.v.canSeeSale(s) {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && s.CustomerID != f.CustomerID {
			continue
		}
		if f.IssuerID != "" && s.IssuerID != f.IssuerID {
			continue
		}
		if f.From != nil && s.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !s.CreatedAt.Before(*f.To) {
			continue
		}
		if q != "" {
			customer := st.customers[s.CustomerID].Name
			if !containsAny(q, strconv.FormatInt(s.Number, 10), s.Notes, customer) {
				continue
			}
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Number > list[j].Number
	})
	return list
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.do(func(st *state) error {
		for _, s := range page(r.filter(st, f), f.Limit, f.Offset) {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) Summarize(ctx context.Context, f repository.SaleFilter) (repository.SaleSummary, error) {
	sum := repository.SaleSummary{TotalAmount: decimal.Zero}
	err := r.v.do(func(st *state) error {
		for _, s := range r.filter(st, f) {
			sum.Count++
			switch s.Status {
			case entity.SaleStatusPending:
				sum.Pending++
			case entity.SaleStatusCompleted:
				sum.Completed++
			case entity.SaleStatusCancelled:
				sum.Cancelled++
			}
			if s.Status != entity.SaleStatusCancelled {
				sum.TotalAmount = sum.TotalAmount.Add(s.Total)
			}
		}
		return nil
	})
	return sum, err
}
