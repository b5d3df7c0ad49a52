// Package otp keeps short-lived email verification codes in Redis. Codes are
// stored bcrypt-hashed under one key per email with a TTL, so a restart never
// leaves stale verification state in the main database.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeLength = 6
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrCodeInvalid = errors.New("invalid verification code")
	ErrCodeExpired = errors.New("verification code expired")
)

type challenge struct {
	ID        string    `json:"id"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore connects to Redis at addr (default localhost:6379). TTL <= 0 falls
// back to 5 minutes, the lifetime verification emails advertise.
func NewStore(addr, password string, ttl time.Duration) *Store {
	if addr == "" {
		addr = "localhost:6379"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &Store{client: client, prefix: "clinicrecord:otp:", ttl: ttl}
}

// Issue generates a fresh code for the email, replacing any outstanding one,
// and returns the plaintext code for delivery. Only the hash is stored.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(challenge{
		ID:        uuid.NewString(),
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(email), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify checks the code for the email. A correct code is consumed; an
// expired one is also consumed so the user has to request a new email.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCodeInvalid
	}
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}

	var ch challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return fmt.Errorf("decode otp: %w", err)
	}
	if time.Now().After(ch.ExpiresAt) {
		s.client.Del(ctx, s.key(email))
		return ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(code)) != nil {
		return ErrCodeInvalid
	}
	s.client.Del(ctx, s.key(email))
	return nil
}

func (s *Store) key(email string) string {
	return s.prefix + email
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			return "", err
		}
		buf[i] = codeChars[n.Int64()]
	}
	return string(buf), nil
}
