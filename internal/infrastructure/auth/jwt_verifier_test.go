package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	v := NewJWTVerifier("topsecret")

	token, err := IssueToken("topsecret", "user-1", "a@example.com", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.Subject)
	assert.Equal(t, "a@example.com", id.Email)
}

func TestVerifyRejects(t *testing.T) {
	v := NewJWTVerifier("topsecret")
	ctx := context.Background()

	wrongKey, _ := IssueToken("other", "u", "a@example.com", time.Hour)
	expired, _ := IssueToken("topsecret", "u", "a@example.com", -time.Minute)
	noEmail, _ := IssueToken("topsecret", "u", "", time.Hour)
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"email": "a@example.com"}).
		SignedString([]byte("topsecret"))

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"wrong key": wrongKey,
		"expired":   expired,
		"no email":  noEmail,
		"hs512":     hs512,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err := NewJWTVerifier("").Verify(ctx, "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
