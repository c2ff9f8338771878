package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer([]byte("0123456789abcdef0123456789abcdef"), "safara-test", time.Hour)

	tok, err := iss.Issue("SAF-ABCD1234", "Jane Tourist", "deadbeef", "1990-04-12")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "SAF-ABCD1234", claims.PublicID)
	require.Equal(t, "Jane Tourist", claims.FullName)
	require.Equal(t, "deadbeef", claims.IDNumberHash)
	require.Equal(t, "1990-04-12", claims.DateOfBirth)
	require.Equal(t, "safara-test", claims.Issuer)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	a := NewIssuer([]byte("0123456789abcdef0123456789abcdef"), "safara-test", time.Hour)
	b := NewIssuer([]byte("ffffffffffffffffffffffffffffffff"), "safara-test", time.Hour)

	tok, err := a.Issue("SAF-ABCD1234", "Jane Tourist", "deadbeef", "")
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.Error(t, err)
}

func TestIssueWithoutKey(t *testing.T) {
	iss := NewIssuer(nil, "", 0)
	_, err := iss.Issue("SAF-X", "n", "h", "")
	require.ErrorIs(t, err, ErrNoSigningKey)
}
