package postgres

import (
	"fmt"
	"strings"
)

// conditions arma cláusulas WHERE con placeholders posicionales.
// El formato recibe el número del argumento: add("status = $%d", s); para reutilizarlo usar %[1]d.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(format string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(format, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos y devuelve el sufijo SQL.
func (c *conditions) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, c.args...), limit, offset)
	n := len(c.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(s))
	return "%" + s + "%"
}
