package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/bootstrap"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

const (
	testJWTSecret = "router-test-secret"
	testIssuer    = "ventas-test"
)

// apiFixture API completa sobre el store en memoria con un admin y un staff.
type apiFixture struct {
	app        *fiber.App
	svc        *bootstrap.Services
	adminToken string
	staffToken string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "ventas-test", Storage: "memory"},
		JWT:     config.JWTConfig{Secret: testJWTSecret, Expiration: 60, Issuer: testIssuer},
		Reports: config.ReportsConfig{LowStockThreshold: 5, Locale: "en-US"},
	}
	st := bootstrap.NewMemoryStorage(memory.New())
	svc := bootstrap.NewServices(cfg, st, zerolog.Nop())

	ctx := context.Background()
	_, err := svc.Users.EnsureAdmin(ctx, "admin@tienda.com", "admin-pass", "Admin")
	require.NoError(t, err)
	_, err = svc.Users.Create(ctx, entity.Actor{}, dto.CreateUserRequest{
		Email: "ana@tienda.com", Password: "staff-pass", Name: "Ana", Role: entity.RoleStaff,
	})
	require.NoError(t, err)

	app := apphttp.NewServer(cfg.App.Name, zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      svc.Auth,
		UserUC:      svc.Users,
		SettingsUC:  svc.Settings,
		CustomerUC:  svc.Customers,
		ProductUC:   svc.Products,
		AuditUC:     svc.Audit,
		SalesUC:     svc.Sales,
		InvoiceUC:   svc.Invoices,
		DashboardUC: svc.Dashboard,
		ReportUC:    svc.Reports,
		Health:      apphttp.NewHealthHandler(st, st.Driver),
		JWTSecret:   testJWTSecret,
	})

	f := &apiFixture{app: app, svc: svc}
	f.adminToken = f.login(t, "admin@tienda.com", "admin-pass")
	f.staffToken = f.login(t, "ana@tienda.com", "staff-pass")
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	return decode[dto.ErrorResponse](t, resp).Code
}

// createProduct crea un producto como admin y devuelve su ID.
func (f *apiFixture) createProduct(t *testing.T, sku, price string, stock int) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/products", f.adminToken, map[string]any{
		"sku": sku, "name": "Producto " + sku, "price": price, "stock": stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp).ID
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["storage"])
}

func TestAuth_LoginYMe(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@tienda.com", Password: "mala-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/auth/me", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "ana@tienda.com", me.Email)
	assert.Equal(t, entity.RoleStaff, me.Role)

	resp = f.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsers_SoloAdmin(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/users", f.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/users", f.adminToken, dto.CreateUserRequest{Email: "beto@tienda.com", Password: "12345678", Name: "Beto"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/users", f.adminToken, dto.CreateUserRequest{Email: "beto@tienda.com", Password: "12345678"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/users?limit=500", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.UserListResponse](t, resp)
	assert.Equal(t, 3, list.Page.Total)
	assert.Equal(t, 100, list.Page.Limit)
}

func TestUsers_CambioDeRolRevocaToken(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/users", f.adminToken, dto.CreateUserRequest{
		Email: "jefe2@tienda.com", Password: "clave-segura", Name: "Jefe 2", Role: entity.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	boss := decode[dto.UserResponse](t, resp)
	bossToken := f.login(t, "jefe2@tienda.com", "clave-segura")

	resp = f.do(t, http.MethodGet, "/api/audit-logs", bossToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	staff := entity.RoleStaff
	resp = f.do(t, http.MethodPut, "/api/users/"+boss.ID, f.adminToken, dto.UpdateUserRequest{Role: &staff})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/products", bossToken, map[string]any{"sku": "X1", "name": "X", "price": "1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_REVOKED", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/audit-logs", bossToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Con un login nuevo entra como staff.
	staffToken := f.login(t, "jefe2@tienda.com", "clave-segura")
	resp = f.do(t, http.MethodGet, "/api/audit-logs", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	inactive := entity.UserStatusInactive
	resp = f.do(t, http.MethodPut, "/api/users/"+boss.ID, f.adminToken, dto.UpdateUserRequest{Status: &inactive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/auth/me", staffToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_REVOKED", errorCode(t, resp))
}

func TestSettings(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPut, "/api/settings", f.staffToken, map[string]any{"name": "Otra"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPut, "/api/settings", f.adminToken, map[string]any{"tax_rate": "150"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPut, "/api/settings", f.adminToken, map[string]any{"name": "Tienda Central", "tax_rate": "19"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/settings", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[dto.SettingsResponse](t, resp)
	assert.Equal(t, "Tienda Central", settings.Name)
	assert.Equal(t, "19", settings.TaxRate.String())
}

func TestProducts_PermisosYDuplicados(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/products", f.staffToken, map[string]any{"sku": "X", "name": "X", "price": "1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	id := f.createProduct(t, "CAFE", "10.00", 5)

	resp = f.do(t, http.MethodPost, "/api/products", f.adminToken, map[string]any{"sku": "CAFE", "name": "Otro", "price": "1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/products/"+id+"/stock", f.adminToken, dto.AdjustStockRequest{Delta: -10})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	resp = f.do(t, http.MethodDelete, "/api/products/"+id, f.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/products?active=false", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.ProductListResponse](t, resp).Items, "staff no ve productos inactivos")

	resp = f.do(t, http.MethodGet, "/api/products?active=quizas", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSales_Flujo(t *testing.T) {
	f := newAPI(t)
	cafe := f.createProduct(t, "CAFE", "10.00", 5)

	// Errores de validación y permisos
	resp := f.do(t, http.MethodPost, "/api/sales", f.staffToken, map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/sales", f.staffToken, map[string]any{
		"items": []any{map[string]any{"product_id": cafe, "quantity": 1, "unit_price": "1.00"}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/sales", f.staffToken, map[string]any{
		"items": []any{map[string]any{"product_id": cafe, "quantity": 50}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	// Venta válida
	resp = f.do(t, http.MethodPost, "/api/sales", f.staffToken, map[string]any{
		"notes": "mesa 4",
		"items": []any{map[string]any{"product_id": cafe, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "20", sale.Total.String())
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	require.Len(t, sale.Items, 1)

	// Historial y exportación del staff
	resp = f.do(t, http.MethodGet, "/api/sales?status=completed", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.SaleListResponse](t, resp)
	assert.Equal(t, 1, list.Summary.Count)
	assert.Equal(t, 1, list.Summary.Completed)

	resp = f.do(t, http.MethodGet, "/api/sales?from=ayer", f.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/sales/export", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	csvBody, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(csvBody), sale.InvoiceNumber)

	// Factura PDF y correo deshabilitado
	resp = f.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/invoice", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = f.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/email", f.staffToken, dto.EmailInvoiceRequest{To: "cliente@mail.com"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "MAIL_DISABLED", errorCode(t, resp))

	// staff no puede anular; admin sí y el stock vuelve
	resp = f.do(t, http.MethodPatch, "/api/sales/"+sale.ID+"/status", f.staffToken, dto.UpdateSaleStatusRequest{Status: "cancelled"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, "/api/sales/"+sale.ID+"/status", f.adminToken, dto.UpdateSaleStatusRequest{Status: "cancelled"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, "/api/sales/"+sale.ID+"/status", f.adminToken, dto.UpdateSaleStatusRequest{Status: "completed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/products/"+cafe, f.adminToken, nil)
	assert.Equal(t, 5, decode[dto.ProductResponse](t, resp).Stock)
}

func TestSales_StaffNoVeVentasAjenas(t *testing.T) {
	f := newAPI(t)
	cafe := f.createProduct(t, "CAFE", "10.00", 5)

	resp := f.do(t, http.MethodPost, "/api/sales", f.adminToken, map[string]any{
		"items": []any{map[string]any{"product_id": cafe, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)

	resp = f.do(t, http.MethodGet, "/api/sales/"+sale.ID, f.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/invoice", f.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/sales", f.staffToken, nil)
	assert.Empty(t, decode[dto.SaleListResponse](t, resp).Items)
}

func TestReportsYDashboard(t *testing.T) {
	f := newAPI(t)
	cafe := f.createProduct(t, "CAFE", "10.00", 3)
	resp := f.do(t, http.MethodPost, "/api/sales", f.staffToken, map[string]any{
		"items": []any{map[string]any{"product_id": cafe, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/dashboard/summary", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.TodayCount)
	require.Len(t, summary.LowStock, 1)

	resp = f.do(t, http.MethodGet, "/api/reports/sales", f.staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[dto.SalesReportDTO](t, resp)
	assert.Equal(t, 1, rep.SalesCount)
	assert.Empty(t, rep.ByIssuer)

	resp = f.do(t, http.MethodGet, "/api/reports/sales?from=2026-05-10&to=2026-05-01", f.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/reports/sales/pdf", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestAuditLogs(t *testing.T) {
	f := newAPI(t)
	f.createProduct(t, "CAFE", "10.00", 3)

	resp := f.do(t, http.MethodGet, "/api/audit-logs", f.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/audit-logs?entity_type=products", f.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.AuditListResponse](t, resp)
	require.NotEmpty(t, list.Items)
	assert.Equal(t, "INSERT", list.Items[0].Action)
}

func TestCustomers_BorradoSoloAdmin(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/customers", f.staffToken, map[string]any{"name": "Juan", "email": "juan@mail.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c := decode[dto.CustomerResponse](t, resp)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+c.ID, f.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/customers/"+c.ID, f.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/customers/"+c.ID, f.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRutaInexistente(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}
