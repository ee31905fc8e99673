package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// AuditHandler consulta de la bitácora (solo lectura, admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Bitácora de cambios
// @Description  Más recientes primero.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "Tabla: users, products, sales, ..."
// @Param        entity_id    query  string  false  "ID del registro"
// @Param        action       query  string  false  "INSERT | UPDATE | DELETE"
// @Param        actor_id     query  string  false  "Usuario que hizo el cambio"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.AuditListResponse
// @Failure      403          {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	in := dto.AuditListRequest{
		EntityType:  c.Query("entity_type"),
		EntityID:    c.Query("entity_id"),
		Action:      c.Query("action"),
		ActorID:     c.Query("actor_id"),
		From:        c.Query("from"),
		To:          c.Query("to"),
		PageRequest: pageQuery(c),
	}
	out, err := h.uc.List(c.Context(), Actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
