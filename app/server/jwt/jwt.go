package jwt

import (
	"errors"
	"fmt"
	"time"
	"user-directory/app/server/errs"

	"github.com/golang-jwt/jwt/v5"
)

const msgUnauthorized = "Not authorized."

type JWT struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// User is the identity embedded into a token.
type User struct {
	ID       string
	Name     string
	Email    string
	Username string
}

type Claims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func New(key string, ttl time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token lifetime %s", ttl)
	}

	return &JWT{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	now := j.now()

	// 创建声明
	claims := &Claims{
		Name:     user.Name,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	// 签名并返回
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ParseUser verifies signature and expiry. Every failure is reported as the same unauthorized error.
func (j *JWT) ParseUser(tokenString string) (*Claims, error) {
	if len(tokenString) == 0 {
		return nil, errs.Unauthorized(msgUnauthorized, errors.New("token string is empty"))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, errs.Unauthorized(msgUnauthorized, fmt.Errorf("parse jwt failed: %w", err))
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errs.Unauthorized(msgUnauthorized, errors.New("invalid token"))
	}

	return claims, nil
}
