package sales

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	domainsales "github.com/jhoicas/Ventas-api/internal/domain/sales"
)

// ExportLimit máximo de ventas por exportación CSV.
const ExportLimit = 10000

// SalesUseCase registro y consulta de ventas.
//
// Las escrituras corren en TxRunner.RunAs y las lecturas en TxRunner.ReadAs, ambas con el
// actor: en PostgreSQL las políticas RLS limitan a staff a sus propias ventas. canSee repite
// la misma regla en la aplicación.
type SalesUseCase struct {
	tx          repository.TxRunner
	exporter    SalesExporter
	exportLimit int
	log         zerolog.Logger
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(tx repository.TxRunner, exporter SalesExporter, log zerolog.Logger) *SalesUseCase {
	return &SalesUseCase{tx: tx, exporter: exporter, exportLimit: ExportLimit, log: log}
}

// Record registra una venta: toma foto de precio/nombre de cada producto, calcula totales con
// la tasa vigente y descuenta stock, todo en la misma transacción.
func (uc *SalesUseCase) Record(ctx context.Context, actor entity.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	status := in.Status
	if status == "" {
		status = entity.SaleStatusCompleted
	}
	if status != entity.SaleStatusCompleted && status != entity.SaleStatusPending {
		return nil, fmt.Errorf("%w: una venta nueva solo puede quedar pending o completed", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	needed := map[string]int{}
	for i, it := range in.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: línea %d sin product_id", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d: la cantidad debe ser mayor a 0", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice != nil {
			if !actor.IsAdmin() {
				return nil, fmt.Errorf("%w: solo un administrador puede fijar el precio", domain.ErrForbidden)
			}
			if it.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("%w: línea %d: precio negativo", domain.ErrInvalidInput, i+1)
			}
		}
		needed[it.ProductID] += it.Quantity
	}

	var (
		sale     *entity.Sale
		customer *entity.Customer
		issuer   *entity.User
		prefix   string
	)
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		if in.CustomerID != "" {
			c, err := tx.Customers.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
			}
			customer = c
		}
		u, err := tx.Users.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if u == nil || u.Status != entity.UserStatusActive {
			return domain.ErrUnauthorized
		}
		issuer = u
		settings, err := tx.Settings.Get(ctx)
		if err != nil {
			return err
		}
		prefix = settings.InvoicePrefix

		// bloqueo en orden de ID para no cruzarse con otra venta concurrente
		ids := make([]string, 0, len(needed))
		for id := range needed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		products := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			p, err := tx.Products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
			if !p.Active {
				return fmt.Errorf("%w: %s", domain.ErrInactiveProduct, p.SKU)
			}
			if p.Stock < needed[id] {
				return fmt.Errorf("%w: %s tiene %d, se piden %d", domain.ErrInsufficientStock, p.SKU, p.Stock, needed[id])
			}
			products[id] = p
		}

		number, err := tx.Sales.NextNumber(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		sale = &entity.Sale{
			ID:         uuid.New().String(),
			Number:     number,
			CustomerID: in.CustomerID,
			IssuerID:   actor.UserID,
			TaxRate:    settings.TaxRate,
			Status:     status,
			Notes:      strings.TrimSpace(in.Notes),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, it := range in.Items {
			p := products[it.ProductID]
			price := p.Price
			if it.UnitPrice != nil {
				price = it.UnitPrice.Round(2)
			}
			sale.Items = append(sale.Items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductSKU:  p.SKU,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				UnitPrice:   price,
				Total:       domainsales.LineTotal(it.Quantity, price),
			})
		}
		sale.Subtotal, sale.TaxTotal, sale.Total = domainsales.Totals(sale.Items, sale.TaxRate)

		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := tx.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		for _, id := range ids {
			if _, err := tx.Products.AdjustStock(ctx, id, -needed[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Int64("number", sale.Number).
		Str("issuer_id", sale.IssuerID).
		Str("status", sale.Status).
		Str("total", sale.Total.StringFixed(2)).
		Msg("venta registrada")

	out := dto.SaleFromEntity(sale, prefix)
	out.IssuerName = displayName(issuer)
	if customer != nil {
		out.CustomerName = customer.Name
	}
	return &out, nil
}

// Get devuelve la venta con líneas. Para staff una venta ajena no existe.
func (uc *SalesUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.SaleResponse, error) {
	var out *dto.SaleResponse
	err := uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) error {
		sale, _, err := uc.load(ctx, tx, actor, id)
		out = sale
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// load lee la venta visible para el actor junto con la configuración vigente.
func (uc *SalesUseCase) load(ctx context.Context, tx repository.TxRepos, actor entity.Actor, id string) (*dto.SaleResponse, *entity.CompanySettings, error) {
	sale, err := tx.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil || !canSee(actor, sale) {
		return nil, nil, domain.ErrNotFound
	}
	settings, err := tx.Settings.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	out := dto.SaleFromEntity(sale, settings.InvoicePrefix)
	names := newNameCache(tx)
	out.CustomerName = names.customer(ctx, sale.CustomerID)
	out.IssuerName = names.issuer(ctx, sale.IssuerID)
	return &out, settings, nil
}

// UpdateStatus aplica una transición válida. Admin puede cualquier transición; staff solo
// completar su propia venta pendiente. Cancelar devuelve las unidades al stock.
func (uc *SalesUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, id, status string) (*dto.SaleResponse, error) {
	if !entity.ValidSaleStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	var from string
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		sale, err := tx.Sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil || !canSee(actor, sale) {
			return domain.ErrNotFound
		}
		from = sale.Status
		if !domainsales.CanTransition(from, status) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, status)
		}
		if !actor.IsAdmin() && !(from == entity.SaleStatusPending && status == entity.SaleStatusCompleted) {
			return fmt.Errorf("%w: staff solo puede completar sus ventas pendientes", domain.ErrForbidden)
		}
		if err := tx.Sales.UpdateStatus(ctx, id, from, status, time.Now().UTC()); err != nil {
			return err
		}
		if domainsales.RestocksOnTransition(from, status) {
			for _, it := range sale.Items {
				if it.ProductID == "" {
					continue // producto eliminado: no hay a dónde devolver
				}
				if _, err := tx.Products.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sale_id", id).
		Str("from", from).
		Str("to", status).
		Str("actor", actor.UserID).
		Msg("estado de venta actualizado")
	return uc.Get(ctx, actor, id)
}

// filter traduce la consulta del historial. Staff siempre queda limitado a sus ventas.
func (uc *SalesUseCase) filter(actor entity.Actor, in dto.SaleListRequest) (repository.SaleFilter, error) {
	if in.Status != "" && !entity.ValidSaleStatus(in.Status) {
		return repository.SaleFilter{}, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	from, to, err := dto.ParseDayRange(in.From, in.To)
	if err != nil {
		return repository.SaleFilter{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	issuer := in.IssuerID
	if !actor.IsAdmin() {
		issuer = actor.UserID
	}
	return repository.SaleFilter{
		Status:     in.Status,
		CustomerID: in.CustomerID,
		IssuerID:   issuer,
		Search:     strings.TrimSpace(in.Search),
		From:       from,
		To:         to,
	}, nil
}

// List historial paginado con resumen del conjunto filtrado.
func (uc *SalesUseCase) List(ctx context.Context, actor entity.Actor, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	f, err := uc.filter(actor, in)
	if err != nil {
		return nil, err
	}
	page := in.PageRequest
	page.Normalize()
	f.Limit, f.Offset = page.Limit, page.Offset

	var (
		items   []dto.SaleResponse
		summary repository.SaleSummary
	)
	err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) error {
		list, err := tx.Sales.List(ctx, f)
		if err != nil {
			return err
		}
		if summary, err = tx.Sales.Summarize(ctx, f); err != nil {
			return err
		}
		items, err = uc.toResponses(ctx, tx, list)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.SaleListResponse{
		Items: items,
		Summary: dto.SaleSummaryResponse{
			Count:       summary.Count,
			TotalAmount: summary.TotalAmount,
			Pending:     summary.Pending,
			Completed:   summary.Completed,
			Cancelled:   summary.Cancelled,
		},
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: summary.Count},
	}, nil
}

// Export escribe en w el historial filtrado. Si el filtro abarca más de ExportLimit ventas
// no escribe nada y devuelve ErrInvalidInput para que se acote el rango.
func (uc *SalesUseCase) Export(ctx context.Context, actor entity.Actor, in dto.SaleListRequest, w io.Writer) error {
	f, err := uc.filter(actor, in)
	if err != nil {
		return err
	}
	var (
		items    []dto.SaleResponse
		currency string
	)
	err = uc.tx.ReadAs(ctx, actor, func(tx repository.TxRepos) error {
		summary, err := tx.Sales.Summarize(ctx, f)
		if err != nil {
			return err
		}
		if summary.Count > uc.exportLimit {
			uc.log.Warn().
				Int("count", summary.Count).
				Int("limit", uc.exportLimit).
				Str("actor", actor.UserID).
				Msg("exportación rechazada por tamaño")
			return fmt.Errorf("%w: el filtro abarca %d ventas y el máximo por exportación es %d; acote las fechas",
				domain.ErrInvalidInput, summary.Count, uc.exportLimit)
		}
		f.Limit, f.Offset = uc.exportLimit, 0
		list, err := tx.Sales.List(ctx, f)
		if err != nil {
			return err
		}
		settings, err := tx.Settings.Get(ctx)
		if err != nil {
			return err
		}
		currency = settings.Currency
		items, err = uc.toResponses(ctx, tx, list)
		return err
	})
	if err != nil {
		return err
	}
	return uc.exporter.WriteSales(w, currency, items)
}

func (uc *SalesUseCase) toResponses(ctx context.Context, tx repository.TxRepos, list []*entity.Sale) ([]dto.SaleResponse, error) {
	settings, err := tx.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	names := newNameCache(tx)
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		r := dto.SaleFromEntity(s, settings.InvoicePrefix)
		r.CustomerName = names.customer(ctx, s.CustomerID)
		r.IssuerName = names.issuer(ctx, s.IssuerID)
		out = append(out, r)
	}
	return out, nil
}

func canSee(actor entity.Actor, sale *entity.Sale) bool {
	return actor.IsAdmin() || actor.IsService() || sale.IssuerID == actor.UserID
}

func displayName(u *entity.User) string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// nameCache evita consultar el mismo cliente o vendedor una vez por venta.
type nameCache struct {
	repos     repository.TxRepos
	customers map[string]string
	issuers   map[string]string
}

func newNameCache(repos repository.TxRepos) *nameCache {
	return &nameCache{repos: repos, customers: map[string]string{}, issuers: map[string]string{}}
}

func (c *nameCache) customer(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	if name, ok := c.customers[id]; ok {
		return name
	}
	name := ""
	if cu, err := c.repos.Customers.GetByID(ctx, id); err == nil && cu != nil {
		name = cu.Name
	}
	c.customers[id] = name
	return name
}

func (c *nameCache) issuer(ctx context.Context, id string) string {
	if name, ok := c.issuers[id]; ok {
		return name
	}
	name := ""
	if u, err := c.repos.Users.GetByID(ctx, id); err == nil {
		name = displayName(u)
	}
	c.issuers[id] = name
	return name
}
