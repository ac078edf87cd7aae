// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives: password hashing, random
// tokens and HMAC-signed claims.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Signing) from
// the domain logic. Services receive it through small interfaces such as
// [PasswordHasher] so tests can swap in cheaper implementations.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a signer is built without key material.
var ErrEmptySecret = errors.New("sec: signing secret must not be empty")

// SessionClaims is the payload carried by the session cookie.
//
// Only the subject (user id) is application data; everything else is the
// registered claim set used for expiry and issuer checks.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (claims *SessionClaims) UserID() string {
	return claims.Subject
}

// HMACSigner signs and verifies [SessionClaims] with HS256.
type HMACSigner struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewHMACSigner creates a signer for the given secret and issuer.
func NewHMACSigner(secret, issuer string) (*HMACSigner, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMACSigner{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// WithClock overrides the signer's clock. Tests only.
func (signer *HMACSigner) WithClock(now func() time.Time) *HMACSigner {
	signer.now = now
	return signer
}

// Sign issues a token for subject that expires after timeToLive.
func (signer *HMACSigner) Sign(subject string, timeToLive time.Duration) (string, error) {
	currentTime := signer.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, issuer and expiry of tokenString.
func (signer *HMACSigner) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.secret, nil
	},
		jwt.WithIssuer(signer.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(signer.now),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
