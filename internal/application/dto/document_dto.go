package dto

import "time"

// InvoiceDocument todo lo que necesita el renderizador de facturas. Es el único
// insumo del PDF: descarga, correo y CLI lo arman igual.
type InvoiceDocument struct {
	Company  SettingsResponse
	Sale     SaleResponse
	Customer *CustomerResponse // nil = venta de mostrador
}

// SalesReportDocument reporte de ventas listo para imprimir.
type SalesReportDocument struct {
	Company     SettingsResponse
	Report      SalesReportDTO
	GeneratedAt time.Time
}
