package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AdminScope = "admin"

type JWTClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type TokenRequest struct {
	Password string `json:"password"`
}

type TokenResponse struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// NewAdminToken signs an HS256 admin token valid for duration
func NewAdminToken(secret string, duration time.Duration) (TokenResponse, error) {
	expiry := time.Now().Add(duration)
	claims := JWTClaims{
		Scope: AdminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error signing token %v", err)
	}

	return TokenResponse{Token: signed, Expiry: expiry}, nil
}

func ValidateJWTToken(tokenString string, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
