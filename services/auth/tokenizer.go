package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenValidity = 30 * time.Minute

type Tokenizer struct {
	secret []byte
}

func NewTokenizer(secret string) *Tokenizer {
	return &Tokenizer{
		secret: []byte(secret),
	}
}

func (t *Tokenizer) GenerateToken(username string, role string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      now.Add(tokenValidity).Unix(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token for user %s: %s", username, err)
	}

	return signed, nil
}

// ParseToken returns the username and role of a valid, non-expired token.
func (t *Tokenizer) ParseToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", fmt.Errorf("error parsing token: %s", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", "", fmt.Errorf("token lacks a username")
	}

	role, _ := claims["role"].(string)

	return username, role, nil
}
