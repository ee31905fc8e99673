package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

const (
	mwSecret = "test-secret-key-for-unit-tests"
	mwUserID = "00000000-0000-0000-0000-000000000001"
)

func bearer(t *testing.T, secret, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, mwUserID, role, "ventas-test", expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// storedRoles simula la tabla users: rol vigente por usuario; ausente = eliminado o inactivo.
type storedRoles map[string]string

func (s storedRoles) CheckSession(_ context.Context, userID, role string) error {
	current, ok := s[userID]
	switch {
	case !ok:
		return fmt.Errorf("%w: usuario inactivo", domain.ErrUnauthorized)
	case current != role:
		return fmt.Errorf("%w: el rol cambió", domain.ErrUnauthorized)
	}
	return nil
}

type brokenSessions struct{}

func (brokenSessions) CheckSession(context.Context, string, string) error {
	return errors.New("conexión rechazada")
}

// guardedApp expone GET /guarded detrás de AuthMiddleware + RequireRole(roles...).
func guardedApp(sessions apphttp.SessionChecker, roles ...string) *fiber.App {
	app := apphttp.NewServer("test", zerolog.Nop())
	app.Get("/guarded",
		apphttp.AuthMiddleware(mwSecret, sessions),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			actor := apphttp.Actor(c)
			return c.JSON(fiber.Map{"user_id": actor.UserID, "role": actor.Role})
		},
	)
	return app
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		stored   string // rol actual en la base; "" = usuario inactivo
		header   func(t *testing.T) string
		status   int
		wantCode string
	}{
		{
			name:   "admin en ruta admin",
			stored: entity.RoleAdmin,
			roles:  []string{entity.RoleAdmin},
			header: func(t *testing.T) string { return bearer(t, mwSecret, entity.RoleAdmin, 60) },
			status: http.StatusOK,
		},
		{
			name:   "staff en ruta admin o staff",
			stored: entity.RoleStaff,
			roles:  []string{entity.RoleAdmin, entity.RoleStaff},
			header: func(t *testing.T) string { return bearer(t, mwSecret, entity.RoleStaff, 60) },
			status: http.StatusOK,
		},
		{
			name:     "staff en ruta admin",
			stored:   entity.RoleStaff,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return bearer(t, mwSecret, entity.RoleStaff, 60) },
			status:   http.StatusForbidden,
			wantCode: "FORBIDDEN",
		},
		{
			name:     "rol desconocido",
			stored:   "auditor",
			roles:    []string{entity.RoleAdmin, entity.RoleStaff},
			header:   func(t *testing.T) string { return bearer(t, mwSecret, "auditor", 60) },
			status:   http.StatusForbidden,
			wantCode: "FORBIDDEN",
		},
		{
			name:     "token sin rol",
			stored:   entity.RoleAdmin,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return bearer(t, mwSecret, "", 60) },
			status:   http.StatusUnauthorized,
			wantCode: "MISSING_ROLE",
		},
		{
			name:     "sin header",
			stored:   entity.RoleAdmin,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "" },
			status:   http.StatusUnauthorized,
			wantCode: "MISSING_TOKEN",
		},
		{
			name:     "esquema Basic",
			stored:   entity.RoleAdmin,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
		{
			name:     "token malformado",
			stored:   entity.RoleAdmin,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "Bearer token.invalido.aqui" },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
		{
			name:     "firmado con otro secreto",
			stored:   entity.RoleAdmin,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return bearer(t, "otro-secreto", entity.RoleAdmin, 60) },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
		{
			name:     "expirado",
			stored:   entity.RoleAdmin,
			roles:    []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return bearer(t, mwSecret, entity.RoleAdmin, -1) },
			status:   http.StatusUnauthorized,
			wantCode: "INVALID_TOKEN",
		},
		{
			name:     "admin degradado a staff después del login",
			roles:    []string{entity.RoleAdmin, entity.RoleStaff},
			stored:   entity.RoleStaff,
			header:   func(t *testing.T) string { return bearer(t, mwSecret, entity.RoleAdmin, 60) },
			status:   http.StatusUnauthorized,
			wantCode: "SESSION_REVOKED",
		},
		{
			name:     "usuario desactivado",
			roles:    []string{entity.RoleAdmin, entity.RoleStaff},
			header:   func(t *testing.T) string { return bearer(t, mwSecret, entity.RoleStaff, 60) },
			status:   http.StatusUnauthorized,
			wantCode: "SESSION_REVOKED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			sessions := storedRoles{}
			if tt.stored != "" {
				sessions[mwUserID] = tt.stored
			}
			resp, err := guardedApp(sessions, tt.roles...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.wantCode == "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, mwUserID, body["user_id"])
				return
			}
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestAuthMiddleware_ErrorAlRevisarSesion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", bearer(t, mwSecret, entity.RoleAdmin, 60))
	resp, err := guardedApp(brokenSessions{}, entity.RoleAdmin).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
