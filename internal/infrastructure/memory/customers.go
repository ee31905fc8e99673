package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ v *view }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[c.ID] = *c
		r.v.record(st, entity.AuditActionInsert, "customers", c.ID, nil, toCustomerRow(*c))
		return nil
	})
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		old, ok := st.customers[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		updated := *c
		updated.CreatedAt = old.CreatedAt
		st.customers[c.ID] = updated
		r.v.record(st, entity.AuditActionUpdate, "customers", c.ID, toCustomerRow(old), toCustomerRow(updated))
		return nil
	})
}

// Delete borra el cliente y desvincula sus ventas (ON DELETE SET NULL).
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return forbidden()
		}
		old, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		delete(st.customers, id)
		r.v.record(st, entity.AuditActionDelete, "customers", id, toCustomerRow(old), nil)
		for sid, s := range st.sales {
			if s.CustomerID == id {
				before := s
				s.CustomerID = ""
				st.sales[sid] = s
				r.v.record(st, entity.AuditActionUpdate, "sales", sid, toSaleRow(before), toSaleRow(s))
			}
		}
		return nil
	})
}

func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	var out []*entity.Customer
	total := 0
	err := r.v.do(func(st *state) error {
		q := strings.ToLower(strings.TrimSpace(f.Search))
		var list []entity.Customer
		for _, c := range st.customers {
			if q != "" && !containsAny(q, c.Name, c.Email, c.TaxID) {
				continue
			}
			list = append(list, c)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Name != list[j].Name {
				return list[i].Name < list[j].Name
			}
			return list[i].ID < list[j].ID
		})
		total = len(list)
		for _, c := range page(list, f.Limit, f.Offset) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, total, err
}

// containsAny coincidencia parcial sin distinguir mayúsculas (equivalente a ILIKE '%q%').
func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
