package dto

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de fechas en filtros (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDayRange interpreta from/to como días en UTC. to es inclusivo, por eso el
// límite superior devuelto es el inicio del día siguiente. Vacío = sin límite.
func ParseDayRange(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, nil, fmt.Errorf("from inválido (YYYY-MM-DD): %q", from)
		}
		start = &t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, nil, fmt.Errorf("to inválido (YYYY-MM-DD): %q", to)
		}
		next := t.AddDate(0, 0, 1)
		end = &next
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, fmt.Errorf("from debe ser anterior o igual a to")
	}
	return start, end, nil
}
