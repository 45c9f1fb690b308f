package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staffpoints/backend/internal/db"
	"github.com/staffpoints/backend/internal/model"
)

const (
	AdminUsername     = "admin"
	seedAdminPassword = "Password01"
	maxUsernameLength = 64
	maxPasswordBytes  = 72 // bcrypt rejects anything longer
)

// CredentialBackend persists the full ordered credential list. LoadUsers
// returns an error satisfying db.IsNotExist when no store has been created.
type CredentialBackend interface {
	LoadUsers(ctx context.Context) ([]model.User, error)
	SaveUsers(ctx context.Context, users []model.User) error
}

// CredentialStore serializes every read-modify-write of the backend behind
// a single writer lock. Reads share the lock.
type CredentialStore struct {
	backend CredentialBackend
	hasher  *PasswordHasher
	log     logrus.FieldLogger
	mu      sync.RWMutex
}

func NewCredentialStore(backend CredentialBackend, hasher *PasswordHasher, log logrus.FieldLogger) *CredentialStore {
	return &CredentialStore{
		backend: backend,
		hasher:  hasher,
		log:     log.WithField("component", "credentials"),
	}
}

// Bootstrap seeds the admin account into a missing store, or hashes every
// legacy plaintext password found in an existing one. It returns the number
// of records changed. Only the first record per username is kept. Nothing is
// written when the store is unreadable or a hash fails.
func (s *CredentialStore) Bootstrap(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		if !db.IsNotExist(err) {
			s.log.WithError(err).Warn("credential store unreadable, skipping migration")
			return 0, fmt.Errorf("load credentials: %w", err)
		}
		seed, err := s.seedAdmin(ctx)
		if err != nil {
			return 0, err
		}
		if err := s.backend.SaveUsers(ctx, []model.User{seed}); err != nil {
			return 0, fmt.Errorf("save credentials: %w", err)
		}
		s.log.Info("created credential store with seed admin account")
		return 1, nil
	}

	changed := 0
	hasAdmin := false
	seen := make(map[string]struct{}, len(users))
	kept := users[:0]
	for _, u := range users {
		if _, dup := seen[u.Username]; dup {
			changed++
			s.log.WithField("username", u.Username).Warn("dropped duplicate credential record")
			continue
		}
		seen[u.Username] = struct{}{}
		if u.Username == AdminUsername {
			hasAdmin = true
		}
		if !s.hasher.IsHash(u.PasswordHash) {
			hash, locked, err := s.migratePassword(ctx, u.PasswordHash)
			if err != nil {
				return 0, fmt.Errorf("migrate password for %q: %w", u.Username, err)
			}
			u.PasswordHash = hash
			changed++
			entry := s.log.WithField("username", u.Username)
			if locked {
				entry.Warn("plaintext password too long to hash, account locked")
			} else {
				entry.Info("migrated plaintext password to hash")
			}
		}
		kept = append(kept, u)
	}
	users = kept

	if !hasAdmin {
		seed, err := s.seedAdmin(ctx)
		if err != nil {
			return 0, err
		}
		users = append(users, seed)
		changed++
		s.log.Warn("admin account missing, restored seed admin")
	}

	if changed == 0 {
		return 0, nil
	}
	if err := s.backend.SaveUsers(ctx, users); err != nil {
		return 0, fmt.Errorf("save credentials: %w", err)
	}
	return changed, nil
}

func (s *CredentialStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	users := s.snapshot(ctx)
	for _, u := range users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *CredentialStore) List(ctx context.Context) []model.User {
	return s.snapshot(ctx)
}

func (s *CredentialStore) Add(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	if err := validateNewUser(username, password, role); err != nil {
		return nil, err
	}

	// Hash before taking the lock so other writers are not held up by bcrypt.
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, ErrDuplicateUser
		}
	}

	user := model.User{Username: username, PasswordHash: hash, Role: role}
	users = append(users, user)
	if err := s.backend.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	return &user, nil
}

func (s *CredentialStore) Remove(ctx context.Context, username string) error {
	if username == AdminUsername {
		return ErrProtectedAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Username != username {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return nil
	}
	if err := s.backend.SaveUsers(ctx, kept); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// snapshot treats an unreadable store as empty so logins fail closed.
func (s *CredentialStore) snapshot(ctx context.Context) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		if !db.IsNotExist(err) {
			s.log.WithError(err).Warn("credential store unreadable, treating as empty")
		}
		return []model.User{}
	}
	return users
}

// load is used by writers. A missing store starts empty, anything else is
// returned so a corrupt file is never overwritten.
func (s *CredentialStore) load(ctx context.Context) ([]model.User, error) {
	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		if db.IsNotExist(err) {
			return []model.User{}, nil
		}
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return users, nil
}

// migratePassword hashes a legacy plaintext password. A password bcrypt
// cannot take is replaced by the hash of a random secret, which locks the
// account until an admin recreates it.
func (s *CredentialStore) migratePassword(ctx context.Context, plaintext string) (string, bool, error) {
	locked := len(plaintext) > maxPasswordBytes
	if locked {
		plaintext = uuid.NewString()
	}
	hash, err := s.hasher.Hash(ctx, plaintext)
	if err != nil {
		return "", false, err
	}
	return hash, locked, nil
}

func (s *CredentialStore) seedAdmin(ctx context.Context) (model.User, error) {
	hash, err := s.hasher.Hash(ctx, seedAdminPassword)
	if err != nil {
		return model.User{}, fmt.Errorf("hash seed password: %w", err)
	}
	return model.User{Username: AdminUsername, PasswordHash: hash, Role: model.RoleAdmin}, nil
}

func validateNewUser(username, password string, role model.Role) error {
	switch {
	case strings.TrimSpace(username) != username || username == "":
		return invalid("username", "must be non-empty without surrounding spaces")
	case len(username) > maxUsernameLength:
		return invalid("username", "too long")
	case strings.ContainsAny(username, "/?#"):
		return invalid("username", "contains reserved characters")
	case password == "":
		return invalid("password", "must not be empty")
	case len(password) > maxPasswordBytes:
		return invalid("password", "must be at most 72 bytes")
	case !role.Valid():
		return invalid("role", "must be admin or user")
	}
	return nil
}
