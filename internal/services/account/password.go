package account

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing modes
const (
	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// PasswordHasher turns passwords into their stored form and checks them
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// NewHasher returns the hasher for the given mode
func NewHasher(mode string, bcryptCost int) (PasswordHasher, error) {
	switch mode {
	case HashingPlain:
		return PlainHasher{}, nil
	case HashingBcrypt, "":
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
		}
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// PlainHasher stores passwords as-is
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// bcryptMaxLen is the longest input bcrypt accepts
const bcryptMaxLen = 72

// BcryptHasher stores bcrypt hashes. Passwords longer than bcrypt accepts
// are reduced to a SHA-256 digest first.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(password)) == nil
}

func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
