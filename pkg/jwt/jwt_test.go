package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Inventario-console/pkg/jwt"
)

func signed(t *testing.T, secret string, claims gojwt.MapClaims) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestDecode_ExtraeIdentidadSinVerificarFirma(t *testing.T) {
	tok := signed(t, "secreto-del-servidor", gojwt.MapClaims{
		"sub":  "u-1",
		"name": "Ana",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := pkgjwt.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestDecode_AceptaPrefijoBearer(t *testing.T) {
	tok := signed(t, "x", gojwt.MapClaims{"sub": "u-2", "role": "USUARIO"})

	claims, err := pkgjwt.Decode("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "USUARIO", claims.Role)
}

func TestDecode_TokenExpiradoSigueSiendoLegible(t *testing.T) {
	// La validez la decide el servidor; aquí solo se decodifica.
	tok := signed(t, "x", gojwt.MapClaims{"sub": "u-3", "exp": time.Now().Add(-time.Hour).Unix()})

	_, err := pkgjwt.Decode(tok)
	assert.NoError(t, err)
}

func TestDecode_Errores(t *testing.T) {
	for _, tok := range []string{"", "no-es-un-jwt", "a.b.c"} {
		_, err := pkgjwt.Decode(tok)
		assert.Error(t, err, "token %q", tok)
	}

	sinSub := signed(t, "x", gojwt.MapClaims{"name": "Ana"})
	_, err := pkgjwt.Decode(sinSub)
	assert.Error(t, err, "token sin sub no identifica al usuario")
}
