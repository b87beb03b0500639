// Package token issues and verifies the HS256 bearer tokens handed out at login.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
)

const issuer = "project-tracker"

// Claims are the verified contents of a bearer token.
type Claims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

// Issuer signs and parses access tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for userID and its expiry.
func (i *Issuer) Issue(userID int64) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp.Truncate(time.Second), nil
}

// Parse verifies the signature, issuer and expiry of raw.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &rc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(domain.ErrTokenInvalid, err)
	}

	userID, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil || userID <= 0 || rc.ID == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &Claims{
		UserID:    userID,
		TokenID:   rc.ID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}
