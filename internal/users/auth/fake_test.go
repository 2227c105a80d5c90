// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/mail"
	"github.com/taibuivan/weebtsuki/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*auth.User{}}
}

func (repository *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("User already exists")
		}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repository *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (repository *memoryUsers) MarkVerified(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.IsVerified = true
	return nil
}

// memoryCodes is an in-memory [auth.CodeRepository]. expire drops a key
// as if its TTL had elapsed.
type memoryCodes struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryCodes() *memoryCodes {
	return &memoryCodes{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (codes *memoryCodes) Set(_ context.Context, key, value string, ttl time.Duration) error {
	codes.mu.Lock()
	defer codes.mu.Unlock()
	codes.values[key] = value
	codes.ttls[key] = ttl
	return nil
}

func (codes *memoryCodes) Get(_ context.Context, key string) (string, error) {
	codes.mu.Lock()
	defer codes.mu.Unlock()
	value, ok := codes.values[key]
	if !ok {
		return "", apperr.NotFound("Code")
	}
	return value, nil
}

func (codes *memoryCodes) Delete(_ context.Context, key string) error {
	codes.mu.Lock()
	defer codes.mu.Unlock()
	delete(codes.values, key)
	return nil
}

func (codes *memoryCodes) expire(key string) {
	codes.mu.Lock()
	defer codes.mu.Unlock()
	delete(codes.values, key)
}

// only returns the single stored key and value.
func (codes *memoryCodes) only() (string, string) {
	codes.mu.Lock()
	defer codes.mu.Unlock()
	for key, value := range codes.values {
		return key, value
	}
	return "", ""
}

// stubTokens issues predictable tokens.
type stubTokens struct{}

func (stubTokens) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "token-" + userID + "-" + role, nil
}

// recordingMailer keeps every message and can be told to fail.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	fail bool
}

func (mailer *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.fail {
		return errors.New("smtp down")
	}
	mailer.sent = append(mailer.sent, msg)
	return nil
}

func (mailer *recordingMailer) last() mail.Message {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) == 0 {
		return mail.Message{}
	}
	return mailer.sent[len(mailer.sent)-1]
}

type fixture struct {
	service *auth.Service
	users   *memoryUsers
	otps    *memoryCodes
	resets  *memoryCodes
	mailer  *recordingMailer
}

func newFixture() *fixture {
	f := &fixture{
		users:  newMemoryUsers(),
		otps:   newMemoryCodes(),
		resets: newMemoryCodes(),
		mailer: &recordingMailer{},
	}
	f.service = auth.NewService(auth.Dependencies{
		Users:       f.users,
		OTPs:        f.otps,
		ResetTokens: f.resets,
		Tokens:      stubTokens{},
		Mailer:      f.mailer,
		Logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		FrontendURL: "https://weebtsuki.app/",
	})
	return f
}
