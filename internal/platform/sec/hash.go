// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plain-text passwords into opaque, salted hashes.
type PasswordHasher interface {
	// Hash returns an opaque hash of plainTextPassword.
	Hash(plainTextPassword string) (string, error)

	// Verify reports whether plainTextPassword produced existingHash.
	Verify(plainTextPassword, existingHash string) bool
}

// BcryptHasher implements [PasswordHasher] with the bcrypt algorithm.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor.
// Out-of-range costs fall back to [bcrypt.DefaultCost].
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes a plain-text password using the bcrypt algorithm.
func (hasher *BcryptHasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with its hashed version in constant time.
func (hasher *BcryptHasher) Verify(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
