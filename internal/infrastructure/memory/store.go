// Package memory implementa los puertos de persistencia en memoria. Reproduce lo que en
// PostgreSQL hacen la base de datos y sus triggers: transacciones con rollback, bitácora
// de auditoría por fila, CHECK de stock y las políticas por rol.
package memory

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	users     map[string]entity.User
	settings  entity.CompanySettings
	customers map[string]entity.Customer
	products  map[string]entity.Product
	sales     map[string]entity.Sale
	items     map[string][]entity.SaleItem // por sale_id
	audit     []entity.AuditLog
	saleSeq   int64
	auditSeq  int64
}

func (s *state) clone() *state {
	c := &state{
		users:     make(map[string]entity.User, len(s.users)),
		settings:  s.settings,
		customers: make(map[string]entity.Customer, len(s.customers)),
		products:  make(map[string]entity.Product, len(s.products)),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		items:     make(map[string][]entity.SaleItem, len(s.items)),
		audit:     append([]entity.AuditLog(nil), s.audit...),
		saleSeq:   s.saleSeq,
		auditSeq:  s.auditSeq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.SaleItem(nil), v...)
	}
	return c
}

// Store base de datos en memoria. Segura para uso concurrente: cada transacción toma el lock completo.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// New crea un Store vacío con la fila de company_settings sembrada.
func New() *Store {
	settings := *entity.DefaultCompanySettings()
	settings.UpdatedAt = time.Now().UTC()
	return &Store{
		st: &state{
			users:     map[string]entity.User{},
			settings:  settings,
			customers: map[string]entity.Customer{},
			products:  map[string]entity.Product{},
			sales:     map[string]entity.Sale{},
			items:     map[string][]entity.SaleItem{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// view acceso al estado con la identidad de quien opera. inTx = el lock ya está tomado.
type view struct {
	s     *Store
	actor entity.Actor
	inTx  bool
}

func (v *view) do(fn func(st *state) error) error {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}

// privileged admin o rol de servicio (mismo criterio que app_role() IN ('admin','service')).
func (v *view) privileged() bool {
	return v.actor.IsService() || v.actor.IsAdmin()
}

// canSeeSale staff solo ve sus propias ventas.
func (v *view) canSeeSale(sale entity.Sale) bool {
	return v.privileged() || sale.IssuerID == v.actor.UserID
}

func (v *view) record(st *state, action, table, id string, oldRow, newRow any) {
	st.auditSeq++
	entry := entity.AuditLog{
		ID:         st.auditSeq,
		ActorID:    v.actor.UserID,
		Action:     action,
		EntityType: table,
		EntityID:   id,
		CreatedAt:  v.s.now(),
	}
	if oldRow != nil {
		entry.OldData, _ = json.Marshal(oldRow)
	}
	if newRow != nil {
		entry.NewData, _ = json.Marshal(newRow)
	}
	st.audit = append(st.audit, entry)
}

// RunAs ejecuta fn con el lock tomado sobre una copia del estado; si fn falla se descarta la copia.
func (s *Store) RunAs(ctx context.Context, actor entity.Actor, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st
	s.st = saved.clone()

	if err := fn(txRepos(&view{s: s, actor: actor, inTx: true})); err != nil {
		s.st = saved
		return err
	}
	return nil
}

// ReadAs ejecuta fn con el lock tomado y la visibilidad del actor. Como en una transacción
// READ ONLY nada de lo que fn escriba queda en el store.
func (s *Store) ReadAs(ctx context.Context, actor entity.Actor, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st
	s.st = saved.clone()
	defer func() { s.st = saved }()

	return fn(txRepos(&view{s: s, actor: actor, inTx: true}))
}

func txRepos(v *view) repository.TxRepos {
	return repository.TxRepos{
		Users:     &UserRepo{v: v},
		Settings:  &SettingsRepo{v: v},
		Customers: &CustomerRepo{v: v},
		Products:  &ProductRepo{v: v},
		Sales:     &SaleRepo{v: v},
		Reports:   &ReportRepo{v: v},
		AuditLogs: &AuditLogRepo{v: v},
	}
}

// Repositorios fuera de transacción, con rol de servicio (igual que las lecturas por pool).

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{v: &view{s: s}} }

// Settings repositorio de company_settings.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{v: &view{s: s}} }

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{v: &view{s: s}} }

// Products repositorio del catálogo.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: &view{s: s}} }

// Sales repositorio de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{v: &view{s: s}} }

// Reports consultas agregadas.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{v: &view{s: s}} }

// AuditLogs lectura de la bitácora.
func (s *Store) AuditLogs() *AuditLogRepo { return &AuditLogRepo{v: &view{s: s}} }

// SetClock reemplaza el reloj usado para la bitácora (tests).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func forbidden() error { return domain.ErrForbidden }

func settingsID() string { return strconv.Itoa(entity.CompanySettingsID) }

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
