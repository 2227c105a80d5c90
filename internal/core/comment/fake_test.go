// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/weebtsuki/internal/core/comment"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
)

// mockResolver is a testify mock of [comment.BlogResolver].
type mockResolver struct {
	mock.Mock
}

func (resolver *mockResolver) ResolveID(ctx context.Context, identifier string) (string, error) {
	args := resolver.Called(ctx, identifier)
	return args.String(0), args.Error(1)
}

// memoryRepository is an in-memory [comment.Repository].
type memoryRepository struct {
	mu        sync.Mutex
	comments  map[string]*comment.Comment
	usernames map[string]string
	clock     time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		comments:  map[string]*comment.Comment{},
		usernames: map[string]string{"reader-1": "reader", "reader-2": "other", "admin-1": "tai"},
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (repository *memoryRepository) ListByBlog(_ context.Context, blogID string) ([]*comment.Comment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	list := []*comment.Comment{}
	for _, item := range repository.comments {
		if item.BlogID == blogID {
			copied := *item
			list = append(list, &copied)
		}
	}
	slices.SortFunc(list, func(a, b *comment.Comment) int {
		if order := b.CreatedAt.Compare(a.CreatedAt); order != 0 {
			return order
		}
		return strings.Compare(b.ID, a.ID)
	})
	return list, nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, ok := repository.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	copied := *item
	return &copied, nil
}

func (repository *memoryRepository) Create(_ context.Context, item *comment.Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.clock = repository.clock.Add(time.Minute)
	item.CreatedAt = repository.clock
	item.User.Username = repository.usernames[item.User.ID]

	copied := *item
	repository.comments[item.ID] = &copied
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repository.comments, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
