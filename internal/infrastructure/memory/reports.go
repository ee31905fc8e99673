package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados sobre las ventas no canceladas.
type ReportRepo struct{ v *view }

func (r *ReportRepo) sales(st *state, issuerID string, from, to time.Time) []entity.Sale {
	var list []entity.Sale
	for _, s := range st.sales {
		if s.Status == entity.SaleStatusCancelled || !r.v.canSeeSale(s) {
			continue
		}
		if issuerID != "" && s.IssuerID != issuerID {
			continue
		}
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		list = append(list, s)
	}
	return list
}

func (r *ReportRepo) GetSalesMetrics(ctx context.Context, issuerID string, from, to time.Time) (decimal.Decimal, int, error) {
	revenue := decimal.Zero
	count := 0
	err := r.v.do(func(st *state) error {
		for _, s := range r.sales(st, issuerID, from, to) {
			revenue = revenue.Add(s.Total)
			count++
		}
		return nil
	})
	return revenue, count, err
}

func (r *ReportRepo) GetDailySales(ctx context.Context, issuerID string, from, to time.Time) ([]repository.DailySalesResult, error) {
	var out []repository.DailySalesResult
	err := r.v.do(func(st *state) error {
		byDay := map[time.Time]*repository.DailySalesResult{}
		for _, s := range r.sales(st, issuerID, from, to) {
			t := s.CreatedAt.UTC()
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			row, ok := byDay[day]
			if !ok {
				row = &repository.DailySalesResult{Day: day, Revenue: decimal.Zero}
				byDay[day] = row
			}
			row.Count++
			row.Revenue = row.Revenue.Add(s.Total)
		}
		for _, row := range byDay {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
		return nil
	})
	return out, err
}

func (r *ReportRepo) GetTopProducts(ctx context.Context, issuerID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	var out []repository.TopProductResult
	err := r.v.do(func(st *state) error {
		bySKU := map[string]*repository.TopProductResult{}
		for _, s := range r.sales(st, issuerID, from, to) {
			for _, it := range st.items[s.ID] {
				row, ok := bySKU[it.ProductSKU]
				if !ok {
					row = &repository.TopProductResult{SKU: it.ProductSKU, Revenue: decimal.Zero}
					bySKU[it.ProductSKU] = row
				}
				if it.ProductID != "" {
					row.ProductID = it.ProductID
				}
				row.ProductName = it.ProductName
				row.QuantitySold += it.Quantity
				row.Revenue = row.Revenue.Add(it.Total)
			}
		}
		for _, row := range bySKU {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool {
			if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
				return c > 0
			}
			if out[i].QuantitySold != out[j].QuantitySold {
				return out[i].QuantitySold > out[j].QuantitySold
			}
			return out[i].SKU < out[j].SKU
		})
		out = page(out, limit, 0)
		return nil
	})
	return out, err
}

func (r *ReportRepo) GetSalesByIssuer(ctx context.Context, from, to time.Time) ([]repository.IssuerSalesResult, error) {
	var out []repository.IssuerSalesResult
	err := r.v.do(func(st *state) error {
		byIssuer := map[string]*repository.IssuerSalesResult{}
		for _, s := range r.sales(st, "", from, to) {
			row, ok := byIssuer[s.IssuerID]
			if !ok {
				u := st.users[s.IssuerID]
				name := u.Name
				if name == "" {
					name = u.Email
				}
				row = &repository.IssuerSalesResult{IssuerID: s.IssuerID, IssuerName: name, Revenue: decimal.Zero}
				byIssuer[s.IssuerID] = row
			}
			row.Count++
			row.Revenue = row.Revenue.Add(s.Total)
		}
		for _, row := range byIssuer {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool {
			if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
				return c > 0
			}
			return out[i].IssuerName < out[j].IssuerName
		})
		return nil
	})
	return out, err
}
