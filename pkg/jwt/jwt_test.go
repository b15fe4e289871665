package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/pkg/jwt"
)

const secret = "s3cr3t"

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "tenant-1", "a@b.co", "idp", 5)
	require.NoError(t, err)

	tenantID, err := jwt.Parse(secret, "idp", tok)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenantID)

	tenantID, err = jwt.Parse(secret, "", tok)
	require.NoError(t, err, "sin issuer configurado no se verifica")
	assert.Equal(t, "tenant-1", tenantID)
}

func TestParse_Rechazos(t *testing.T) {
	valid, err := jwt.Generate(secret, "tenant-1", "", "idp", 5)
	require.NoError(t, err)
	expired, err := jwt.Generate(secret, "tenant-1", "", "idp", -5)
	require.NoError(t, err)
	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{Subject: "tenant-1"}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name, secret, issuer, token string
	}{
		{"firma incorrecta", "otro", "", valid},
		{"expirado", secret, "", expired},
		{"emisor distinto", secret, "otro-idp", valid},
		{"alg none", secret, "", none},
		{"basura", secret, "", "a.b.c"},
		{"secret vacío", "", "", valid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwt.Parse(tt.secret, tt.issuer, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SinSubject(t *testing.T) {
	_, err := jwt.Generate(secret, "", "", "", 5)
	assert.Error(t, err)
}
