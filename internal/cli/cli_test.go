package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/bootstrap"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// memoryOpener comparte un mismo store entre invocaciones, como lo haría una base real.
func memoryOpener(st *memory.Store) Opener {
	return func(ctx context.Context, opts *RootOptions, logOut io.Writer) (*Env, error) {
		cfg := &config.Config{
			App:     config.AppConfig{Env: "test", Storage: "memory"},
			Reports: config.ReportsConfig{LowStockThreshold: 5, Locale: "en-US"},
		}
		storage := bootstrap.NewMemoryStorage(st)
		log := logger.Nop()
		return &Env{
			Config:   cfg,
			Storage:  storage,
			Services: bootstrap.NewServices(cfg, storage, log.Zerolog()),
			Log:      log,
		}, nil
	}
}

func execute(t *testing.T, st *memory.Store, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{open: memoryOpener(st)})
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, body, 0o644))
	return path
}

const catalogYAML = `products:
  - sku: CAF-500
    name: Café molido 500g
    price: 12.50
    stock: 40
  - sku: TE-20
    name: Té verde x20
    description: Caja de 20 bolsitas
    price: "4.90"
    stock: 3
    active: false
`

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	paths := [][]string{
		{"migrate"},
		{"create-admin"},
		{"seed", "products"},
		{"export", "sales"},
		{"invoice", "render"},
		{"invoice", "email"},
	}
	for _, p := range paths {
		t.Run(strings.Join(p, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(p)
			require.NoError(t, err)
			assert.Equal(t, p[len(p)-1], sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestRoot_FlagsInvalidos(t *testing.T) {
	st := memory.New()

	_, err := execute(t, st, "--format", "xml", "migrate", "--list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato inválido")

	_, err = execute(t, st, "--storage", "mongo", "migrate", "--list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage inválido")
}

func TestMigrate(t *testing.T) {
	st := memory.New()

	out, err := execute(t, st, "migrate", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "0001_schema.sql")
	assert.Contains(t, out, "0003_rls.sql")

	_, err = execute(t, st, "migrate")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "postgres")
}

func TestCreateAdmin_Idempotente(t *testing.T) {
	st := memory.New()

	out, err := execute(t, st, "--format", "json", "create-admin", "--email", "admin@tienda.com", "--password", "clave-segura")
	require.NoError(t, err)
	var res CreateAdminResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Created)

	out, err = execute(t, st, "create-admin", "--email", "admin@tienda.com", "--password", "otra-clave-123")
	require.NoError(t, err)
	assert.Contains(t, out, "ya existe")

	_, err = execute(t, st, "create-admin", "--email", "corto@tienda.com", "--password", "123")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = execute(t, st, "create-admin", "--email", "sin-clave@tienda.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestSeedProducts(t *testing.T) {
	st := memory.New()
	path := writeFile(t, "catalogo.yaml", []byte(catalogYAML))

	out, err := execute(t, st, "--format", "json", "seed", "products", "--file", path)
	require.NoError(t, err)
	var res SeedResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"CAF-500", "TE-20"}, res.Created)
	assert.Empty(t, res.Skipped)

	p, err := st.Products().GetBySKU(context.Background(), "TE-20")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "4.9", p.Price.String())
	assert.False(t, p.Active)

	out, err = execute(t, st, "seed", "products", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "creados: 0, omitidos: 2")
}

func TestSeedProducts_Latin1(t *testing.T) {
	st := memory.New()
	// "Café" con é = 0xE9 en ISO-8859-1.
	body := append([]byte("products:\n  - sku: CAF-1\n    name: Caf"), 0xE9)
	body = append(body, []byte("\n    price: 3\n    stock: 1\n")...)
	path := writeFile(t, "latin1.yaml", body)

	_, err := execute(t, st, "seed", "products", "--file", path, "--encoding", "latin1")
	require.NoError(t, err)

	p, err := st.Products().GetBySKU(context.Background(), "CAF-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Café", p.Name)
}

func TestSeedProducts_Errores(t *testing.T) {
	st := memory.New()

	_, err := execute(t, st, "seed", "products", "--file", filepath.Join(t.TempDir(), "no-existe.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	bad := writeFile(t, "precio.yaml", []byte("products:\n  - sku: X\n    name: X\n    price: doce\n"))
	_, err = execute(t, st, "seed", "products", "--file", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precio inválido")

	empty := writeFile(t, "vacio.yaml", []byte("products: []\n"))
	_, err = execute(t, st, "seed", "products", "--file", empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no contiene productos")

	partial := writeFile(t, "parcial.yaml", []byte("products:\n  - sku: OK-1\n    name: Bueno\n    price: 1\n  - sku: MAL-1\n    name: Malo\n    price: -1\n"))
	out, err := execute(t, st, "seed", "products", "--file", partial)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "creados: 1")
	assert.Contains(t, out, "MAL-1")
}

// seedSale deja un admin, un producto y una venta completada en el store.
func seedSale(t *testing.T, st *memory.Store) *dto.SaleResponse {
	t.Helper()
	ctx := context.Background()
	_, err := execute(t, st, "create-admin", "--email", "admin@tienda.com", "--password", "clave-segura")
	require.NoError(t, err)
	_, err = execute(t, st, "seed", "products", "--file", writeFile(t, "c.yaml", []byte(catalogYAML)))
	require.NoError(t, err)

	admin, err := st.Users().GetByEmail(ctx, "admin@tienda.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	product, err := st.Products().GetBySKU(ctx, "CAF-500")
	require.NoError(t, err)
	require.NotNil(t, product)

	env, err := memoryOpener(st)(ctx, &RootOptions{}, io.Discard)
	require.NoError(t, err)
	sale, err := env.Services.Sales.Record(ctx, entity.Actor{UserID: admin.ID, Role: entity.RoleAdmin}, dto.CreateSaleRequest{
		Notes: "mostrador",
		Items: []dto.SaleItemRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	return sale
}

func TestExportSales(t *testing.T) {
	st := memory.New()
	seedSale(t, st)

	out, err := execute(t, st, "export", "sales")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "invoice_number,created_at,status"))
	assert.Contains(t, lines[1], "INV-000001")
	assert.Contains(t, lines[1], "25.00")

	path := filepath.Join(t.TempDir(), "ventas.csv")
	_, err = execute(t, st, "export", "sales", "--status", "cancelled", "--out", path)
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(body), "\n"), "solo encabezado")

	_, err = execute(t, st, "export", "sales", "--from", "15/03/2026")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestInvoiceRender(t *testing.T) {
	st := memory.New()
	sale := seedSale(t, st)
	path := filepath.Join(t.TempDir(), "factura.pdf")

	out, err := execute(t, st, "--format", "json", "invoice", "render", sale.ID, "--out", path)
	require.NoError(t, err)
	var res RenderInvoiceResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, path, res.Path)
	assert.Greater(t, res.Bytes, 0)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	_, err = execute(t, st, "invoice", "render", "no-existe", "--out", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestInvoiceEmail_SinSMTP(t *testing.T) {
	st := memory.New()
	sale := seedSale(t, st)

	_, err := execute(t, st, "invoice", "email", sale.ID, "--to", "cliente@mail.com")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "enviar factura")
}
