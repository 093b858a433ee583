package stubserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

// Claims identifies the user and the kind of token.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.StandardClaims
}

// issuer mints and verifies HS256 tokens.
type issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func (i *issuer) mint(username, kind string) (string, error) {
	ttl := i.accessTTL
	if kind == tokenRefresh {
		ttl = i.refreshTTL
	}
	now := i.now()
	claims := Claims{
		TokenType: kind,
		StandardClaims: jwt.StandardClaims{
			Subject:   username,
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *issuer) pair(username string) (access, refresh string, err error) {
	if access, err = i.mint(username, tokenAccess); err != nil {
		return "", "", err
	}
	if refresh, err = i.mint(username, tokenRefresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

var errWrongTokenType = errors.New("wrong token type")

// parse verifies signature, expiry and kind, and returns the claims.
func (i *issuer) parse(tokenString, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.TokenType != kind {
		return nil, errWrongTokenType
	}
	if claims.ExpiresAt < i.now().Unix() {
		return nil, fmt.Errorf("token expired")
	}
	return claims, nil
}
