package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "staff", "ventas-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "staff", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "admin", "ventas-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "admin", "ventas-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "admin", "ventas-test", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestParse_RechazaOtroAlgoritmo(t *testing.T) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, pkgjwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           testUserID,
		Role:             "admin",
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, signed)
	assert.Error(t, err, "solo se acepta HS256")
}

func TestParse_SinExpiracion(t *testing.T) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, pkgjwt.Claims{UserID: testUserID, Role: "admin"})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, signed)
	assert.Error(t, err)
}
