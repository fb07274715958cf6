package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUIDString() string {
	return uuid.New().String()
}

// ==================== RANDOM CODES ====================

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomDigits creates a numeric code of specified length (booking PINs)
func RandomDigits(length int) string {
	if length <= 0 {
		length = 4
	}

	code := ""
	for i := 0; i < length; i++ {
		code += fmt.Sprintf("%d", rand.Intn(10))
	}

	return code
}

// RandomString creates an alphanumeric code of specified length (QR codes, access URLs)
func RandomString(length int) string {
	if length <= 0 {
		length = 10
	}

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphanumeric[rand.Intn(len(alphanumeric))]
	}

	return string(buf)
}
