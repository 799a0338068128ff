// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// # Password Hashing

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// # Opaque Tokens

// GenerateSecureToken returns a URL-safe random token of the given byte length.
//
// It is used for refresh tokens and login challenge tokens, where the token
// itself is the secret (unlike JWTs, which are signed claims).
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// HashToken returns the hex SHA-256 digest of a token.
//
// # Why hash at rest?
//
// Refresh tokens are bearer secrets. Storing only the digest means a leaked
// sessions table cannot be replayed against the API.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}

// # One-Time Codes

// GenerateOneTimeCode returns a zero-padded numeric code of the given length,
// drawn from crypto/rand. Used for the login challenge second step.
func GenerateOneTimeCode(digits int) (string, error) {
	upperBound := big.NewInt(1)
	for i := 0; i < digits; i++ {
		upperBound.Mul(upperBound, big.NewInt(10))
	}

	value, err := rand.Int(rand.Reader, upperBound)
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate one-time code: %w", err)
	}

	return fmt.Sprintf("%0*d", digits, value), nil
}
