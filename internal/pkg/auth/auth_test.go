package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "hostelcare-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateToken(Principal{Subject: "S1001", Username: "s1@uni.edu", Role: RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	p, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "S1001", p.Subject)
	assert.Equal(t, "s1@uni.edu", p.Username)
	assert.False(t, p.IsAdmin())
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService()
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(Principal{Subject: "1", Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "hostelcare-test"})
	token, _, err := other.GenerateToken(Principal{Subject: "1", Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	claims := &Claims{
		Username: "x",
		Role:     "INSTRUCTOR",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "hostelcare-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	for _, header := range []string{"", "Bearer ", "Basic dXNlcjpwYXNz"} {
		_, err = ExtractBearerToken(header)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid, header)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashWithCost("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("plaintext", "plaintext"))
}
