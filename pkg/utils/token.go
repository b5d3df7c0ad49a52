package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken builds a signed JWT carrying the user id and role flags.
func GenerateToken(userID uint64, isDoctor, isPatient bool) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "clinicrecord-dev-secret" // fallback when .env is missing
	}

	claims := jwt.MapClaims{
		"user_id":    userID,
		"is_doctor":  isDoctor,
		"is_patient": isPatient,
		"exp":        time.Now().Add(time.Hour * 24).Unix(), // 24h validity
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a token string.
func ValidateToken(encodedToken string) (*jwt.Token, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "clinicrecord-dev-secret"
	}

	return jwt.Parse(encodedToken, func(token *jwt.Token) (interface{}, error) {
		// only HMAC-signed tokens are accepted
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
}
