// Package identity issues and reads unauthenticated display-name claims.
//
// A claim is a fresh random id bound to whatever username the client asks
// for. Nothing is stored server side: the signed token is the whole session,
// and releasing it just means the client drops it.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const MaxUsernameLength = 40

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrLongUsername  = fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	ErrInvalidToken  = errors.New("invalid identity token")
)

// Identity is a claimed {id, username} pair.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Issuer signs identity tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Secret is the signing key, shared with the request middleware.
func (i *Issuer) Secret() []byte { return i.secret }

// Claim binds username to a new id and returns the identity with its token.
// Usernames are not unique.
func (i *Issuer) Claim(username string) (Identity, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Identity{}, "", ErrEmptyUsername
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return Identity{}, "", ErrLongUsername
	}

	id := Identity{ID: uuid.NewString(), Username: username}
	now := i.now()
	claims := jwt.MapClaims{
		"sub":      id.ID,
		"username": id.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Identity{}, "", fmt.Errorf("failed to sign identity token: %w", err)
	}
	return id, token, nil
}

// Parse verifies a raw token string.
func (i *Issuer) Parse(raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return FromToken(token)
}

// FromToken reads the identity out of verified token claims.
func FromToken(token *jwt.Token) (Identity, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: sub, Username: username}, nil
}
