package jlserver

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer  = "jl"
	tokenSubject = "jl-client"
	tokenTTL     = time.Hour
)

// generateToken mints a signed JWT for the fixed service identity. There
// are no user accounts in this domain, so there is exactly one identity
// and the signing key is just the server's configured secret.
func generateToken(secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"sub": tokenSubject,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

// validateToken checks tok's signature, issuer, subject, and expiry against
// secret.
func validateToken(tok string, secret []byte) error {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(tokenSubject),
		jwt.WithLeeway(time.Minute))
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return fmt.Errorf("token is not valid")
	}
	return nil
}

// subtleConstantTimeEqual reports whether got equals want, in constant
// time so that the length of a matching secret prefix cannot be inferred
// from response latency.
func subtleConstantTimeEqual(got, want []byte) bool {
	return len(got) == len(want) && subtle.ConstantTimeCompare(got, want) == 1
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}
