package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// Códigos SQLSTATE que el API traduce a errores de dominio.
const (
	codeUniqueViolation       = "23505"
	codeForeignKeyViolation   = "23503"
	codeCheckViolation        = "23514"
	codeInsufficientPrivilege = "42501"
	codeInvalidTextRepr       = "22P02" // p. ej. 'abc'::uuid
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	code, _ := pgCode(err)
	if code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// mapError traduce errores de PostgreSQL (RLS, constraints) a errores de dominio.
// op identifica la operación en el mensaje, ej. "insert product".
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	code, constraint := pgCode(err)
	switch {
	case code == codeUniqueViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case code == codeCheckViolation && constraint == "products_stock_check":
		return fmt.Errorf("%s: %w", op, domain.ErrInsufficientStock)
	case code == codeCheckViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	case code == codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case code == codeInsufficientPrivilege:
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	case code == codeInvalidTextRepr:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// validUUID: un id que no es UUID no existe en ninguna tabla; así no llega a la base
// (donde fallaría con 22P02).
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// checkUUIDFilter valida los filtros por id que van contra columnas uuid.
func checkUUIDFilter(field, id string) error {
	if id == "" || validUUID(id) {
		return nil
	}
	return fmt.Errorf("%w: %s no es un UUID válido", domain.ErrInvalidInput, field)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
