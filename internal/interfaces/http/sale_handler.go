package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// SaleHandler registro, historial y cambios de estado de ventas.
type SaleHandler struct {
	uc *sales.SalesUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SalesUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock en la misma transacción. Solo admin puede fijar unit_price.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cliente (opcional), estado (opcional) e ítems"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Record(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de ventas
// @Description  staff solo ve sus propias ventas. Incluye resumen del conjunto filtrado.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "pending | completed | cancelled"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        issuer_id    query  string  false  "Vendedor (solo admin)"
// @Param        search       query  string  false  "Número, cliente o notas"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.SaleListResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	in, err := saleListQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con detalle
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la venta
// @Description  Anular devuelve el stock. staff solo puede completar sus ventas pendientes.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SaleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), Actor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar historial a CSV
// @Tags         sales
// @Security     Bearer
// @Produce      text/csv
// @Param        status       query  string  false  "pending | completed | cancelled"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        issuer_id    query  string  false  "Vendedor (solo admin)"
// @Param        search       query  string  false  "Número, cliente o notas"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200          {file}    file
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/sales/export [get]
func (h *SaleHandler) Export(c *fiber.Ctx) error {
	in, err := saleListQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := h.uc.Export(c.Context(), Actor(c), in, &buf); err != nil {
		return respondError(c, err)
	}
	name := fmt.Sprintf("ventas_%s.csv", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(buf.Bytes())
}

// saleListQuery lee los filtros del historial desde la query.
func saleListQuery(c *fiber.Ctx) (dto.SaleListRequest, error) {
	var in dto.SaleListRequest
	if err := c.QueryParser(&in); err != nil {
		return in, fmt.Errorf("%w: parámetros de consulta: %s", domain.ErrInvalidInput, err.Error())
	}
	in.PageRequest = pageQuery(c)
	return in, nil
}
