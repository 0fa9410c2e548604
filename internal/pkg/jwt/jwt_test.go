package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	service := New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := service.GenerateAccessToken(42, "aigerim", "aigerim@mail.kz")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ParseAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "aigerim", claims.Username)
	assert.Equal(t, "aigerim@mail.kz", claims.Email)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	service := New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, err := service.GenerateRefreshToken(42)
	assert.NoError(t, err)

	claims, err := service.ParseRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestTokens_SecretsAreNotInterchangeable(t *testing.T) {
	service := New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	accessToken, _ := service.GenerateAccessToken(42, "aigerim", "aigerim@mail.kz")
	refreshToken, _ := service.GenerateRefreshToken(42)

	_, err := service.ParseRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ParseAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_Expired(t *testing.T) {
	service := New("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)

	token, err := service.GenerateAccessToken(42, "aigerim", "aigerim@mail.kz")
	assert.NoError(t, err)

	_, err = service.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_WrongSigner(t *testing.T) {
	issuer := New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	verifier := New("other-secret", "refresh-secret", time.Hour, 24*time.Hour)

	token, _ := issuer.GenerateAccessToken(42, "aigerim", "aigerim@mail.kz")

	_, err := verifier.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	service := New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	_, err := service.ParseAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
