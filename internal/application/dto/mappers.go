package dto

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// UserFromEntity arma la respuesta pública de un usuario (sin password).
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// SettingsFromEntity datos de la empresa.
func SettingsFromEntity(s *entity.CompanySettings) SettingsResponse {
	return SettingsResponse{
		Name:          s.Name,
		TaxID:         s.TaxID,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		Website:       s.Website,
		LogoURL:       s.LogoURL,
		Currency:      s.Currency,
		TaxRate:       s.TaxRate,
		InvoicePrefix: s.InvoicePrefix,
		InvoiceFooter: s.InvoiceFooter,
		UpdatedAt:     s.UpdatedAt,
	}
}

func CustomerFromEntity(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// SaleFromEntity cabecera y líneas. Los nombres de cliente y vendedor los completa el caso de uso.
func SaleFromEntity(s *entity.Sale, invoicePrefix string) SaleResponse {
	out := SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		InvoiceNumber: s.InvoiceNumber(invoicePrefix),
		CustomerID:    s.CustomerID,
		IssuerID:      s.IssuerID,
		Subtotal:      s.Subtotal,
		TaxRate:       s.TaxRate,
		TaxTotal:      s.TaxTotal,
		Total:         s.Total,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return out
}

func AuditLogFromEntity(l *entity.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		ActorID:    l.ActorID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		OldData:    l.OldData,
		NewData:    l.NewData,
		CreatedAt:  l.CreatedAt,
	}
}
