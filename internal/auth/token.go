package auth

import (
	"errors"
	"time"

	"fleamarket/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload. It carries the authenticated
// identity the handlers need (id, username, nickname) so no request
// has to touch the users table just to know who is asking.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// GenerateSessionToken issues a signed session token for the given user.
func GenerateSessionToken(userID uint64, username, nickname string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(config.GlobalConfig.Session.Expire) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.GlobalConfig.Session.Secret))
}

// ParseSessionToken validates signature + expiry and returns the claims.
func ParseSessionToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.GlobalConfig.Session.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
