package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Las escrituras son solo para admin;
// staff ve únicamente productos activos.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   repository.TxRunner
	log  zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx repository.TxRunner, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx, log: log}
}

func validateProduct(sku, name string, price decimal.Decimal) error {
	if sku == "" {
		return fmt.Errorf("%w: el SKU es obligatorio", domain.ErrInvalidInput)
	}
	if name == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// Create crea un nuevo producto. SKU duplicado = ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() && !actor.IsService() {
		return nil, domain.ErrForbidden
	}
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if err := validateProduct(sku, name, in.Price); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		existing, err := tx.Products.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: el SKU %s ya existe", domain.ErrDuplicate, sku)
		}
		return tx.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// GetByID obtiene un producto. Para staff los inactivos no existen.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.Active && !actor.IsAdmin()) {
		return nil, domain.ErrNotFound
	}
	out := dto.ProductFromEntity(p)
	return &out, nil
}

// Update actualiza datos del catálogo. No modifica Stock (ver AdjustStock).
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var updated *entity.Product
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		p, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		setIf(&p.SKU, in.SKU)
		setIf(&p.Name, in.Name)
		setIf(&p.Description, in.Description)
		if in.Price != nil {
			p.Price = in.Price.Round(2)
		}
		if in.Active != nil {
			p.Active = *in.Active
		}
		if err := validateProduct(p.SKU, p.Name, p.Price); err != nil {
			return err
		}
		if in.SKU != nil {
			other, err := tx.Products.GetBySKU(ctx, p.SKU)
			if err != nil {
				return err
			}
			if other != nil && other.ID != p.ID {
				return fmt.Errorf("%w: el SKU %s ya existe", domain.ErrDuplicate, p.SKU)
			}
		}
		p.UpdatedAt = time.Now().UTC()
		if err := tx.Products.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ProductFromEntity(updated)
	return &out, nil
}

// Delete borrado lógico: el producto queda inactivo y las ventas conservan su foto.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	active := false
	_, err := uc.Update(ctx, actor, id, dto.UpdateProductRequest{Active: &active})
	return err
}

// AdjustStock suma delta al stock (entrada de mercancía o corrección). No puede quedar negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, actor entity.Actor, id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() && !actor.IsService() {
		return nil, domain.ErrForbidden
	}
	if in.Delta == 0 {
		return nil, fmt.Errorf("%w: delta no puede ser 0", domain.ErrInvalidInput)
	}
	var product *entity.Product
	err := uc.tx.RunAs(ctx, actor, func(tx repository.TxRepos) error {
		p, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		stock, err := tx.Products.AdjustStock(ctx, id, in.Delta)
		if err != nil {
			return err
		}
		p.Stock = stock
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", id).
		Int("delta", in.Delta).
		Int("stock", product.Stock).
		Str("reason", in.Reason).
		Str("actor", actor.UserID).
		Msg("stock ajustado")
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// List busca en el catálogo. staff siempre recibe solo activos.
func (uc *ProductUseCase) List(ctx context.Context, actor entity.Actor, search string, active *bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	if !actor.IsAdmin() {
		t := true
		active = &t
	}
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{Search: search, Active: active, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, p := range list {
		out.Items = append(out.Items, dto.ProductFromEntity(p))
	}
	return out, nil
}
