package helpers

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// SignedDetails are the claims we read off a bearer token. The token itself
// is minted by the external identity provider; Subject carries the
// provider's subject id used to look up the internal user record.
type SignedDetails struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token is expired")
)

func ValidateToken(signedToken string, secret string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, ErrExpiredToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateToken mints a token carrying the given subject id, the way the
// identity provider would. Used by local tooling and tests.
func GenerateToken(subject string, email string, secret string, ttl time.Duration) (string, error) {
	claims := SignedDetails{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
