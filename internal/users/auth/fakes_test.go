// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/mail"
	"github.com/taibuivan/hms/pkg/uuid"
)

// # In-memory Repositories

type memStore struct {
	mu     sync.Mutex
	users  map[string]*User
	tokens map[string]*PasswordResetToken
	now    func() time.Time

	// failLookup makes every read return this error.
	failLookup error
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		users:  map[string]*User{},
		tokens: map[string]*PasswordResetToken{},
		now:    now,
	}
}

// addUser stores an account whose password hash comes from fakeHasher.
func (s *memStore) addUser(email, password string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{ID: uuid.New(), Email: email, PasswordHash: fakeHasher{}.mustHash(password), CreatedAt: s.now()}
	s.users[user.ID] = user
	return user
}

func (s *memStore) userByID(id string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memStore) unusedTokens(userID string) []*PasswordResetToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*PasswordResetToken
	for _, token := range s.tokens {
		if token.UserID == userID && token.UsedAt == nil {
			out = append(out, token)
		}
	}
	return out
}

type memUsers struct{ *memStore }

func (r memUsers) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failLookup != nil {
		return nil, r.failLookup
	}
	user, ok := r.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failLookup != nil {
		return nil, r.failLookup
	}
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r memUsers) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return dberr.ErrConflict
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type memTokens struct{ *memStore }

func (r memTokens) Issue(_ context.Context, token *PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, existing := range r.tokens {
		if existing.UserID == token.UserID && existing.UsedAt == nil {
			delete(r.tokens, key)
		}
	}
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r memTokens) FindByToken(_ context.Context, token string) (*PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.tokens[token]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r memTokens) Consume(_ context.Context, tokenID, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.tokens {
		if record.ID != tokenID || record.UserID != userID {
			continue
		}
		if record.UsedAt != nil || !r.now().Before(record.ExpiresAt) {
			return ErrTokenUnusable
		}
		user, ok := r.users[userID]
		if !ok {
			return ErrTokenUnusable
		}
		usedAt := r.now()
		record.UsedAt = &usedAt
		user.PasswordHash = passwordHash
		return nil
	}
	return ErrTokenUnusable
}

// # Test Doubles

// fakeHasher avoids bcrypt's cost in unit tests.
type fakeHasher struct {
	fail bool
}

func (h fakeHasher) Hash(plain string) (string, error) {
	if h.fail {
		return "", errors.New("hash exploded")
	}
	return "hashed:" + plain, nil
}

func (h fakeHasher) Verify(plain, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == plain && strings.HasPrefix(hash, "hashed:")
}

func (h fakeHasher) mustHash(plain string) string {
	hash, _ := h.Hash(plain)
	return hash
}

type memLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func newMemLimiter(max int) *memLimiter {
	return &memLimiter{max: max, failures: map[string]int{}}
}

func (l *memLimiter) Blocked(_ context.Context, key string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failures[key] >= l.max {
		return 90 * time.Second, nil
	}
	return 0, nil
}

func (l *memLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[key]++
	return nil
}

func (l *memLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
	return nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

// # Fixtures

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memStore
	service *Service
	clock   *time.Time
}

func newFixture(opts ...Option) *fixture {
	current := fixedNow
	clock := func() time.Time { return current }

	store := newMemStore(clock)
	opts = append([]Option{WithClock(clock)}, opts...)
	service := NewService(memUsers{store}, memTokens{store}, fakeHasher{}, opts...)

	return &fixture{store: store, service: service, clock: &current}
}

// advance moves the shared clock forward.
func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}
