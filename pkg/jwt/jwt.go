package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret se devuelve al firmar o verificar sin secreto configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Role viaja en el token para que el gate de peticiones decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "customer" | "wholesale_customer" | "staff" | "super_admin"
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// SessionInput datos del usuario que se firman en la sesión.
type SessionInput struct {
	UserID string
	Role   string
	Email  string
	Name   string
}

// Generate genera un token JWT HS256 con validez ttl desde ahora.
func Generate(secret, issuer string, in SessionInput, ttl time.Duration) (string, error) {
	return GenerateAt(secret, issuer, in, time.Now(), ttl)
}

// GenerateAt genera el token con issued-at = now y expiración now+ttl.
func GenerateAt(secret, issuer string, in SessionInput, now time.Time, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   in.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: in.UserID,
		Role:   in.Role,
		Email:  in.Email,
		Name:   in.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("firmar jwt: %w", err)
	}
	return signed, nil
}

// Parse valida firma, algoritmo, emisor y expiración y devuelve los claims.
// Retorna error si el token es inválido, expirado, de otro emisor o tiene firma incorrecta.
// Con issuer vacío no se exige emisor.
func Parse(secret, issuer, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
