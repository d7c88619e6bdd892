package token

import (
	"errors"
	"fmt"
	"time"

	"fortune_wheel/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateAccessToken(playerID string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.PlayerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.PlayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*model.PlayerClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
