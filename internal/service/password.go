package service

import (
	"context"
	"regexp"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// bcrypt modular crypt format: $2a$10$ followed by 22 chars of salt and 31 of digest.
var bcryptPattern = regexp.MustCompile(`^\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}$`)

// PasswordHasher bounds the number of bcrypt computations running at once.
// Each call still runs on the caller's goroutine.
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewPasswordHasher(cost, concurrency int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(concurrency)),
	}
}

func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash, an
// oversized password and a cancelled context all read as a mismatch.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) bool {
	// bcrypt only reads the first 72 bytes, so longer input would match any
	// password sharing that prefix.
	if len(plaintext) > maxPasswordBytes {
		return false
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (h *PasswordHasher) IsHash(value string) bool {
	return bcryptPattern.MatchString(value)
}
