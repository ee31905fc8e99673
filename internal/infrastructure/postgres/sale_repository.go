package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `s.id, s.number, s.customer_id, s.issuer_id, s.subtotal, s.tax_rate, s.tax_total, s.total,
	s.status, s.notes, s.created_at, s.updated_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// NextNumber toma el siguiente valor de sale_number_seq.
func (r *SaleRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('sale_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sale number: %w", err)
	}
	return n, nil
}

// Create persiste la cabecera de la venta (las líneas van con CreateItem).
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, number, customer_id, issuer_id, subtotal, tax_rate, tax_total, total, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Number, nullIfEmpty(s.CustomerID), s.IssuerID, s.Subtotal, s.TaxRate, s.TaxTotal, s.Total,
		s.Status, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	return mapError("insert sale", err)
}

// CreateItem persiste una línea de venta. total es columna generada en la tabla.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_sku, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SaleID, nullIfEmpty(it.ProductID), it.ProductSKU, it.ProductName, it.Quantity, it.UnitPrice,
	)
	return mapError("insert sale item", err)
}

func scanSale(row scanner) (*entity.Sale, error) {
	var s entity.Sale
	var customerID *string
	if err := row.Scan(
		&s.ID, &s.Number, &customerID, &s.IssuerID, &s.Subtotal, &s.TaxRate, &s.TaxTotal, &s.Total,
		&s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.CustomerID = derefStr(customerID)
	return &s, nil
}

// GetByID devuelve la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapError("get sale", err)
	}

	query := `
		SELECT id, sale_id, product_id, product_sku, product_name, quantity, unit_price, total
		FROM sale_items WHERE sale_id = $1 ORDER BY product_name, id`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.SaleID, &productID, &it.ProductSKU, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		it.ProductID = derefStr(productID)
		s.Items = append(s.Items, &it)
	}
	return s, rows.Err()
}

// UpdateStatus cambia el estado con la condición status = from. En READ COMMITTED una
// transacción que esperaba el lock de la fila vuelve a evaluar el WHERE con la versión
// confirmada, así que solo una de dos transiciones concurrentes aplica.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, updatedAt)
	if err != nil {
		return mapError("update sale status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la venta %s ya no está %s", domain.ErrConflict, id, from)
	}
	return nil
}

func checkSaleFilter(f repository.SaleFilter) error {
	if err := checkUUIDFilter("customer_id", f.CustomerID); err != nil {
		return err
	}
	return checkUUIDFilter("issuer_id", f.IssuerID)
}

// saleConditions traduce el filtro del historial. To es exclusivo.
func saleConditions(f repository.SaleFilter) conditions {
	var c conditions
	if f.Status != "" {
		c.add("s.status = $%d", f.Status)
	}
	if f.CustomerID != "" {
		c.add("s.customer_id = $%d", f.CustomerID)
	}
	if f.IssuerID != "" {
		c.add("s.issuer_id = $%d", f.IssuerID)
	}
	if f.From != nil {
		c.add("s.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		c.add("s.created_at < $%d", *f.To)
	}
	if f.Search != "" {
		c.add(`(s.number::text ILIKE $%[1]d OR s.notes ILIKE $%[1]d OR cu.name ILIKE $%[1]d)`, likePattern(f.Search))
	}
	return c
}

const saleFrom = ` FROM sales s LEFT JOIN customers cu ON cu.id = s.customer_id`

// List devuelve cabeceras, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	if err := checkSaleFilter(f); err != nil {
		return nil, err
	}
	c := saleConditions(f)
	suffix, args := c.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+saleFrom+c.where()+` ORDER BY s.created_at DESC, s.number DESC`+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Summarize agrega el conjunto filtrado completo.
func (r *SaleRepo) Summarize(ctx context.Context, f repository.SaleFilter) (repository.SaleSummary, error) {
	if err := checkSaleFilter(f); err != nil {
		return repository.SaleSummary{}, err
	}
	c := saleConditions(f)
	query := `
		SELECT
		    COUNT(*),
		    COALESCE(SUM(s.total) FILTER (WHERE s.status <> 'cancelled'), 0),
		    COUNT(*) FILTER (WHERE s.status = 'pending'),
		    COUNT(*) FILTER (WHERE s.status = 'completed'),
		    COUNT(*) FILTER (WHERE s.status = 'cancelled')` + saleFrom + c.where()
	var sum repository.SaleSummary
	err := r.q.QueryRow(ctx, query, c.args...).Scan(
		&sum.Count, &sum.TotalAmount, &sum.Pending, &sum.Completed, &sum.Cancelled,
	)
	if err != nil {
		return repository.SaleSummary{}, fmt.Errorf("summarize sales: %w", err)
	}
	return sum, nil
}
