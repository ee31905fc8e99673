// Package money formatea importes según la moneda de la empresa y el locale configurado.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter imprime importes con separadores de miles del locale, ej: "USD 1,234.50".
type Formatter struct {
	printer *message.Printer
}

// NewFormatter construye el formateador. Un locale inválido cae a en-US.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format devuelve "<ISO> <importe>" con la cantidad de decimales estándar de la moneda
// (USD 2, JPY 0, COP 2). Un código desconocido se imprime tal cual con 2 decimales.
func (f *Formatter) Format(code string, amount decimal.Decimal) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		code = unit.String()
	}
	v := amount.Round(int32(scale)).InexactFloat64()
	return code + " " + f.printer.Sprint(number.Decimal(v, number.Scale(scale)))
}

// Number formatea un entero con separadores de miles.
func (f *Formatter) Number(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Percent imprime un porcentaje con 2 decimales, ej: "19.00%".
func (f *Formatter) Percent(p decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(p.Round(2).InexactFloat64(), number.Scale(2))) + "%"
}
