package utils

import (
	"errors"

	"github.com/matthewhartstonge/argon2"
)

var passwordConfig = argon2.DefaultConfig()

// HashPassword returns the argon2id encoded hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	encoded, err := passwordConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword checks password against an encoded hash. A malformed hash
// is reported as an error, a wrong password as false.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if encodedHash == "" || password == "" {
		return false, nil
	}
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
