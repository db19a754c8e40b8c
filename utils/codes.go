package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken returns a hex token (length = bytes).
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// randomCode produces n chars from A-Z0-9 using crypto/rand to avoid modulo bias.
func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// GenerateFolioNumber builds a human-readable folio number like "F-20260828-4K7Q".
// Uniqueness is still enforced by the DB index; callers retry on collision.
func GenerateFolioNumber(now time.Time) (string, error) {
	suffix, err := randomCode(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("F-%s-%s", now.Format("20060102"), suffix), nil
}

// GenerateReferenceCode builds a reservation reference like "RES-AB4D93KF".
func GenerateReferenceCode() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return "RES-" + code, nil
}

// PtrTime returns pointer to time.Time
func PtrTime(t time.Time) *time.Time { return &t }
