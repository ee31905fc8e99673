package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductSeedFile formato del archivo de catálogo:
//
//	products:
//	  - sku: CAF-500
//	    name: Café molido 500g
//	    price: 12.50
//	    stock: 40
type ProductSeedFile struct {
	Products []ProductSeed `yaml:"products"`
}

// ProductSeed un producto del archivo.
type ProductSeed struct {
	SKU         string      `yaml:"sku"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Price       yamlDecimal `yaml:"price"`
	Stock       int         `yaml:"stock"`
	Active      *bool       `yaml:"active"`
}

// yamlDecimal acepta el precio como número o como texto ("12.50") sin pasar por float64.
type yamlDecimal struct {
	decimal.Decimal
}

func (d *yamlDecimal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("línea %d: el precio debe ser un valor escalar", n.Line)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(n.Value))
	if err != nil {
		return fmt.Errorf("línea %d: precio inválido %q", n.Line, n.Value)
	}
	d.Decimal = v
	return nil
}

// SeedResult salida de `seed products`.
type SeedResult struct {
	Created []string      `json:"created"`
	Skipped []string      `json:"skipped"`
	Failed  []SeedFailure `json:"failed,omitempty"`
}

// SeedFailure producto que no se pudo crear.
type SeedFailure struct {
	SKU   string `json:"sku"`
	Error string `json:"error"`
}

// NewSeedCommand crea el comando seed y sus subcomandos.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos iniciales",
	}
	cmd.AddCommand(newSeedProductsCommand(rootOpts))
	return cmd
}

func newSeedProductsCommand(rootOpts *RootOptions) *cobra.Command {
	var file, encoding string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Crea productos desde un archivo YAML",
		Long: `Crea los productos listados en un archivo YAML. Los SKU ya existentes se omiten,
así que el comando puede repetirse sin duplicar el catálogo.

Ejemplo:
  ventasctl seed products --file catalogo.yaml
  ventasctl seed products --file catalogo-latin1.yaml --encoding latin1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := readProductSeeds(file, encoding)
			if err != nil {
				return WrapExitError(ExitCommandError, "leer archivo", err)
			}
			return runSeedProducts(rootOpts, cmd, seeds)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo YAML con la lista products (requerido)")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "codificación del archivo (utf-8|latin1)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readProductSeeds(path, encoding string) ([]ProductSeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var input io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		// Planillas exportadas desde Excel en Windows suelen venir en ISO-8859-1.
		input = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	var doc ProductSeedFile
	if err := yaml.NewDecoder(input).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s está vacío", path)
		}
		return nil, fmt.Errorf("YAML inválido: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("%s no contiene productos", path)
	}
	return doc.Products, nil
}

func runSeedProducts(opts *RootOptions, cmd *cobra.Command, seeds []ProductSeed) error {
	env, err := opts.openEnv(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "abrir almacenamiento", err)
	}
	defer env.Close()

	res := SeedResult{Created: []string{}, Skipped: []string{}}
	for _, s := range seeds {
		_, err := env.Services.Products.Create(cmd.Context(), entity.Actor{}, dto.CreateProductRequest{
			SKU:         s.SKU,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price.Decimal,
			Stock:       s.Stock,
			Active:      s.Active,
		})
		switch {
		case err == nil:
			res.Created = append(res.Created, s.SKU)
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped = append(res.Skipped, s.SKU)
		default:
			res.Failed = append(res.Failed, SeedFailure{SKU: s.SKU, Error: err.Error()})
		}
	}

	lines := []string{fmt.Sprintf("creados: %d, omitidos: %d, con error: %d", len(res.Created), len(res.Skipped), len(res.Failed))}
	for _, f := range res.Failed {
		lines = append(lines, fmt.Sprintf("  %s: %s", f.SKU, f.Error))
	}
	if err := printResult(cmd.OutOrStdout(), opts.Format, res, lines...); err != nil {
		return err
	}
	if len(res.Failed) > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d productos no se pudieron crear", len(res.Failed))}
	}
	return nil
}
