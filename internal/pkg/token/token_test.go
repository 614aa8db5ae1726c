package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tok, err := GenerateToken("507f1f77bcf86cd799439011", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ValidateToken(tok)
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	tok, err := GenerateToken("507f1f77bcf86cd799439011", "user@example.com")
	require.NoError(t, err)

	_, err = ValidateToken(tok + "x")
	require.Error(t, err)
}
