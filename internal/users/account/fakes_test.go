// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/users/auth"
	"github.com/taibuivan/hms/pkg/uuid"
)

type memRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (r *memRepository) addUser(email, password string) *auth.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := &auth.User{ID: uuid.New(), Email: email, PasswordHash: "hashed:" + password, CreatedAt: time.Now()}
	r.users[user.ID] = user
	return user
}

func (r *memRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memRepository) UpdateName(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	stored.Name = user.Name
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return dberr.ErrNotFound
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (r *memRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakeHasher prefixes instead of hashing so tests can read the stored value.
type fakeHasher struct {
	fail bool
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.fail {
		return "", errors.New("hasher unavailable")
	}
	return "hashed:" + password, nil
}

func (h fakeHasher) Verify(password, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password
}

func newTestService(hasher fakeHasher) (*Service, *memRepository) {
	repo := &memRepository{users: map[string]*auth.User{}}
	return NewService(repo, hasher, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}
