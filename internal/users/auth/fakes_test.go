// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/reelflix/internal/platform/apperr"
	"github.com/taibuivan/reelflix/internal/platform/constants"
	"github.com/taibuivan/reelflix/internal/platform/sec"
	"github.com/taibuivan/reelflix/internal/users/auth"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// memoryUsers is an in-memory UserRepository enforcing the same uniqueness as the table.
type memoryUsers struct {
	mu        sync.Mutex
	byID      map[string]*auth.User
	createErr error
	findErr   error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}}
}

func (repo *memoryUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.findErr != nil {
		return nil, repo.findErr
	}
	for _, user := range repo.byID {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return user.ID == id })
}

func (repo *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return user.Email == email })
}

func (repo *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return user.Username == username })
}

func (repo *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.createErr != nil {
		return repo.createErr
	}
	for _, existing := range repo.byID {
		if existing.Email == user.Email || existing.Username == user.Username {
			return apperr.Conflict("User already exists")
		}
	}
	copied := *user
	repo.byID[user.ID] = &copied
	return nil
}

func (repo *memoryUsers) delete(id string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.byID, id)
}

func (repo *memoryUsers) count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.byID)
}

// memoryRevocations is an in-memory RevocationStore recording each TTL.
type memoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Duration
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{entries: map[string]time.Duration{}}
}

func (store *memoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return store.err
	}
	if ttl > 0 {
		store.entries[tokenID] = ttl
	}
	return nil
}

func (store *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return false, store.err
	}
	_, ok := store.entries[tokenID]
	return ok, nil
}

// clock is a settable time source shared by the signer and the service.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	service     *auth.Service
	users       *memoryUsers
	revocations *memoryRevocations
	clock       *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	testClock := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	users := newMemoryUsers()
	revocations := newMemoryRevocations()
	signer := sec.NewSessionSigner(testSecret, constants.AuthIssuer, time.Hour, sec.WithClock(testClock.Now))
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	service := auth.NewService(users, revocations, signer, hasher).WithClock(testClock.Now)

	return &fixture{
		service:     service,
		users:       users,
		revocations: revocations,
		clock:       testClock,
	}
}
