package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Representación JSON de cada fila en la bitácora, con las columnas de la tabla.
// Los usuarios nunca exponen password_hash.

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserRow(u entity.User) userRow {
	return userRow{u.ID, u.Email, u.Name, u.Role, u.Status, u.CreatedAt, u.UpdatedAt}
}

type settingsRow struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TaxID         string          `json:"tax_id"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Website       string          `json:"website"`
	LogoURL       string          `json:"logo_url"`
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	InvoicePrefix string          `json:"invoice_prefix"`
	InvoiceFooter string          `json:"invoice_footer"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toSettingsRow(s entity.CompanySettings) settingsRow {
	return settingsRow{
		ID: s.ID, Name: s.Name, TaxID: s.TaxID, Address: s.Address, Phone: s.Phone, Email: s.Email,
		Website: s.Website, LogoURL: s.LogoURL, Currency: s.Currency, TaxRate: s.TaxRate,
		InvoicePrefix: s.InvoicePrefix, InvoiceFooter: s.InvoiceFooter, UpdatedAt: s.UpdatedAt,
	}
}

type customerRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	TaxID     string    `json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerRow(c entity.Customer) customerRow {
	return customerRow{c.ID, c.Name, c.Email, c.Phone, c.Address, c.TaxID, c.CreatedAt, c.UpdatedAt}
}

type productRow struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductRow(p entity.Product) productRow {
	return productRow{p.ID, p.SKU, p.Name, p.Description, p.Price, p.Stock, p.Active, p.CreatedAt, p.UpdatedAt}
}

type saleRow struct {
	ID         string          `json:"id"`
	Number     int64           `json:"number"`
	CustomerID *string         `json:"customer_id"`
	IssuerID   string          `json:"issuer_id"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toSaleRow(s entity.Sale) saleRow {
	var customer *string
	if s.CustomerID != "" {
		id := s.CustomerID
		customer = &id
	}
	return saleRow{s.ID, s.Number, customer, s.IssuerID, s.Subtotal, s.TaxRate, s.TaxTotal, s.Total, s.Status, s.Notes, s.CreatedAt, s.UpdatedAt}
}

type saleItemRow struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductID   *string         `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

func toSaleItemRow(it entity.SaleItem) saleItemRow {
	var product *string
	if it.ProductID != "" {
		id := it.ProductID
		product = &id
	}
	return saleItemRow{it.ID, it.SaleID, product, it.ProductSKU, it.ProductName, it.Quantity, it.UnitPrice, it.Total}
}
