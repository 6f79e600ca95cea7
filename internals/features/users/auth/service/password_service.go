package service

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword uses bcrypt.DefaultCost unless Cost is lowered (tests).
var Cost = bcrypt.DefaultCost

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPasswordHash reports whether plain matches hash.
func CheckPasswordHash(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
