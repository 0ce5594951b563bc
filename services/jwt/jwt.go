package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessTokenValidity is how long an access token stays usable.
	AccessTokenValidity = time.Hour * 24
	// RefreshTokenValidity is how long a refresh token stays usable.
	RefreshTokenValidity = time.Hour * 24 * 7
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateTokenPair returns an access token and a refresh token signed with
// the given secret. isAdmin marks console sessions.
func GenerateTokenPair(email string, secret string, isAdmin bool, userID uint, role string) (string, string, error) {
	if secret == "" {
		return "", "", errors.New("jwt secret is empty")
	}

	accessClaims := jwt.MapClaims{
		"email":    email,
		"id":       userID,
		"role":     role,
		"is_admin": isAdmin,
		"type":     "access",
		"exp":      time.Now().Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"email": email,
		"id":    userID,
		"type":  "refresh",
		"exp":   time.Now().Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses the token and returns its claims if the
// signature and expiry check out.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GeneratePasswordResetToken issues a short lived token carrying the user's
// email, valid for one hour.
func GeneratePasswordResetToken(email string, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	claims := jwt.MapClaims{
		"email": email,
		"type":  "password_reset_token",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyPasswordResetToken checks a reset token and returns the email it was
// issued for.
func VerifyPasswordResetToken(tokenString string, secret string) (string, error) {
	claims, err := ValidateAndGetClaims(tokenString, secret)
	if err != nil {
		return "", err
	}
	if claims["type"] != "password_reset_token" {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
