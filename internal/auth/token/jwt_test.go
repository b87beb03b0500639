package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)

	raw, exp, err := iss.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims, err := iss.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)

	a, _, err := iss.Issue(1)
	require.NoError(t, err)
	b, _, err := iss.Issue(1)
	require.NoError(t, err)

	ca, _ := iss.Parse(a)
	cb, _ := iss.Parse(b)
	assert.NotEqual(t, ca.TokenID, cb.TokenID)
}

func TestParse_Rejects(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)
	raw, _, err := iss.Issue(1)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
		_, err := other.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewIssuer(secret, time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := iss.Parse("not-a-token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("alg none", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "1",
			ID:        "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = iss.Parse(unsigned)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}
