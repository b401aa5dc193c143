package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/panaderia-erp/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConRol(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "cajero", "erp-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "cajero", claims.Role)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "admin", "erp-test", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestDecode_SinSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-2", "panadero", "erp-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.ParseOrDecode("", tok)
	require.NoError(t, err)
	assert.Equal(t, "panadero", claims.Role)
}

func TestDecode_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "admin", "erp-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Decode(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestDecode_Malformado(t *testing.T) {
	_, err := pkgjwt.Decode("token.invalido.aqui")
	assert.Error(t, err)
}
