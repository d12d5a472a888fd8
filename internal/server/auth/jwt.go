// Package auth mints and checks the HS256 JWTs issued by the development
// backend.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind separates access tokens from refresh tokens so one can never be
// used in place of the other.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims carries the standard claims plus the administrator id and the
// token kind.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"adminId"`
	Kind    Kind   `json:"kind"`
}

// GenerateToken signs a token of the given kind for adminID. Every token
// gets a fresh jti, so two tokens minted in the same second still differ.
func GenerateToken(adminID string, kind Kind, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AdminID: adminID,
		Kind:    kind,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAdminIDFromToken validates tokenString and returns its administrator id.
// Expired tokens yield common.ErrTokenExpired; anything else that fails,
// including a token of the wrong kind, yields common.ErrInvalidToken.
func GetAdminIDFromToken(tokenString string, kind Kind, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Kind != kind || claims.AdminID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.AdminID, nil
}
