package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/clinicadelvalle/ops-api/pkg/jwt"
)

const (
	secret = "secreto-de-prueba"
	userID = "00000000-0000-0000-0000-000000000001"
	nombre = "María Farmacia"
	issuer = "clinica-ops-test"
)

// Generar y parsear deben ser inversos: los claims salen como entraron.
func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, nombre, "farmacia", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotID, gotNombre, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, nombre, gotNombre)
	assert.Equal(t, "farmacia", gotRole)
}

// Un token firmado con otro secreto debe rechazarse.
func TestParse_SecretoIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, nombre, "admin", issuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "la firma con otro secreto debe invalidar el token")
}

// Un token expirado debe rechazarse.
func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, nombre, "quirofano", issuer, -1)
	require.NoError(t, err)

	// Margen para que la expiración ya haya pasado con certeza
	time.Sleep(10 * time.Millisecond)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "un token con expiración en el pasado debe rechazarse")
}

// Secret vacío no debe generar ni validar tokens.
func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, nombre, "admin", issuer, 60)
	assert.Error(t, err)

	_, _, _, err = pkgjwt.Parse("", "cualquier-cosa")
	assert.Error(t, err)
}

// Basura no parseable debe rechazarse.
func TestParse_TokenInvalido(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(secret, "no-es-un-jwt")
	assert.Error(t, err)
}
