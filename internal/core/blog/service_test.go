// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weebtsuki/internal/core/blog"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/cache"
	"github.com/taibuivan/weebtsuki/pkg/pointer"
)

// invalidFields lists the fields a validation error names.
func invalidFields(t *testing.T, err error) []string {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an application error, got %v", err)
	require.Equal(t, apperr.CodeValidation, appErr.Code)

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	return fields
}

func newService(blogs ...*blog.Blog) (*blog.Service, *memoryRepository) {
	repository := newMemoryRepository(blogs...)
	return blog.NewService(repository, nil, time.Minute, discardLogger()), repository
}

// # Create

func TestCreateBlog_Defaults(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	item := &blog.Blog{
		Title:            "  Solo Leveling  ",
		Content:          "Hunters and gates.",
		Category:         blog.CategoryManhwa,
		Genres:           []blog.Genre{"Action", "Action", "Fantasy"},
		AlternativeNames: []string{" Na Honjaman Level Up ", "", "  "},
	}
	author := blog.AuthorRef{ID: "admin-1", Username: "tai"}

	require.NoError(t, service.CreateBlog(ctx, author, item))

	assert.Len(t, item.BlogID, 36)
	assert.Equal(t, "solo-leveling", item.Slug)
	assert.Equal(t, "Solo Leveling", item.Title)
	assert.Equal(t, blog.StatusOngoing, item.Status)
	assert.False(t, item.ReleaseDate.IsZero())
	assert.Equal(t, []blog.Genre{"Action", "Fantasy"}, item.Genres)
	assert.Equal(t, []string{"Na Honjaman Level Up"}, item.AlternativeNames)
	assert.Zero(t, item.OverallRating)
	assert.Zero(t, item.TotalRatings)
	assert.Zero(t, item.Views)
	require.NotNil(t, item.Author)
	assert.Equal(t, "tai", item.Author.Username)

	stored, err := service.GetBlog(ctx, "solo-leveling")
	require.NoError(t, err)
	assert.Equal(t, item.BlogID, stored.BlogID)
}

/*
TestCreateBlog_SlugConflict retries once with the blogId suffix.
*/
func TestCreateBlog_SlugConflict(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	first := &blog.Blog{Title: "Berserk", Content: "Struggler.", Category: blog.CategoryManga}
	second := &blog.Blog{Title: "Berserk", Content: "Again.", Category: blog.CategoryManga}

	require.NoError(t, service.CreateBlog(ctx, blog.AuthorRef{}, first))
	require.NoError(t, service.CreateBlog(ctx, blog.AuthorRef{}, second))

	assert.Equal(t, "berserk", first.Slug)
	assert.Equal(t, "berserk-"+second.BlogID[len(second.BlogID)-8:], second.Slug)
}

func TestCreateBlog_SymbolTitleFallsBackToID(t *testing.T) {
	service, _ := newService()

	item := &blog.Blog{Title: "!!!", Content: "Body", Category: blog.CategoryAnime}
	require.NoError(t, service.CreateBlog(context.Background(), blog.AuthorRef{}, item))
	assert.Equal(t, item.BlogID, item.Slug)
}

func TestCreateBlog_Validation(t *testing.T) {
	tests := []struct {
		name  string
		blog  blog.Blog
		field string
	}{
		{"missing_title", blog.Blog{Content: "c", Category: blog.CategoryAnime}, blog.FieldTitle},
		{"long_title", blog.Blog{Title: strings.Repeat("a", blog.MaxTitleLength+1), Content: "c", Category: blog.CategoryAnime}, blog.FieldTitle},
		{"missing_content", blog.Blog{Title: "t", Category: blog.CategoryAnime}, blog.FieldContent},
		{"bad_category", blog.Blog{Title: "t", Content: "c", Category: "Novel"}, blog.FieldCategory},
		{"all_is_not_a_category", blog.Blog{Title: "t", Content: "c", Category: blog.CategoryAll}, blog.FieldCategory},
		{"bad_status", blog.Blog{Title: "t", Content: "c", Category: blog.CategoryAnime, Status: "Dropped"}, blog.FieldStatus},
		{"bad_genre", blog.Blog{Title: "t", Content: "c", Category: blog.CategoryAnime, Genres: []blog.Genre{"Knitting"}}, blog.FieldGenres},
		{"admin_rating_high", blog.Blog{Title: "t", Content: "c", Category: blog.CategoryAnime, AdminRating: 5.5}, blog.FieldAdminRating},
		{"negative_episodes", blog.Blog{Title: "t", Content: "c", Category: blog.CategoryAnime, Episodes: -1}, blog.FieldEpisodes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository := newService()
			item := tt.blog

			err := service.CreateBlog(context.Background(), blog.AuthorRef{}, &item)
			assert.Contains(t, invalidFields(t, err), tt.field)
			assert.Empty(t, repository.blogs)
		})
	}
}

// # Update and Delete

func TestUpdateBlog(t *testing.T) {
	item := newEntry(func(b *blog.Blog) { b.Slug = "frieren" })
	service, _ := newService(item)

	updated, err := service.UpdateBlog(context.Background(), "frieren", blog.BlogPatch{
		Title:       pointer.To("Frieren: Beyond Journey's End"),
		Status:      pointer.To(blog.StatusCompleted),
		AdminRating: pointer.To(4.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "Frieren: Beyond Journey's End", updated.Title)
	assert.Equal(t, "frieren", updated.Slug, "slug is stable across edits")
	assert.Equal(t, blog.StatusCompleted, updated.Status)
	assert.Equal(t, 4.5, updated.AdminRating)
	assert.Equal(t, item.Content, updated.Content)
}

// counterRacingRepository bumps the episodes counter between the read and
// the write of an update.
type counterRacingRepository struct {
	*memoryRepository
}

func (repository counterRacingRepository) Update(context context.Context, item *blog.Blog, patch blog.BlogPatch) error {
	if _, err := repository.AdjustCounter(context, item.BlogID, blog.TargetEpisodes, blog.ActionIncrement, 1); err != nil {
		return err
	}
	return repository.memoryRepository.Update(context, item, patch)
}

/*
TestUpdateBlog_KeepsConcurrentCounter checks an edit that does not name the
counters leaves a concurrent increment in place.
*/
func TestUpdateBlog_KeepsConcurrentCounter(t *testing.T) {
	item := newEntry(func(b *blog.Blog) { b.Episodes = 10 })
	repository := counterRacingRepository{newMemoryRepository(item)}
	service := blog.NewService(repository, nil, time.Minute, discardLogger())

	updated, err := service.UpdateBlog(context.Background(), item.BlogID, blog.BlogPatch{Title: pointer.To("Renamed")})
	require.NoError(t, err)

	assert.Equal(t, 11, updated.Episodes)
	assert.Equal(t, 11, repository.blogs[item.BlogID].Episodes)
}

/*
TestUpdateBlog_ValidatesBeforeLookup reports the bad field even when the
entry does not exist.
*/
func TestUpdateBlog_ValidatesBeforeLookup(t *testing.T) {
	service, _ := newService()

	_, err := service.UpdateBlog(context.Background(), "missing", blog.BlogPatch{Title: pointer.To("   ")})
	assert.Equal(t, []string{blog.FieldTitle}, invalidFields(t, err))

	_, err = service.UpdateBlog(context.Background(), "missing", blog.BlogPatch{IsPinned: pointer.To(true)})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestDeleteBlog(t *testing.T) {
	item := newEntry()
	service, repository := newService(item)
	ctx := context.Background()

	require.NoError(t, service.DeleteBlog(ctx, item.Slug))
	assert.Empty(t, repository.blogs)

	err := service.DeleteBlog(ctx, item.BlogID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

// # Counters

func TestAdjustCounter(t *testing.T) {
	tests := []struct {
		name   string
		target blog.CounterTarget
		action blog.CounterAction
		value  *int
		want   blog.CounterState
	}{
		{"increment_default", blog.TargetEpisodes, blog.ActionIncrement, nil, blog.CounterState{Episodes: 11, Chapters: 3}},
		{"increment_by", blog.TargetChapters, blog.ActionIncrement, pointer.To(4), blog.CounterState{Episodes: 10, Chapters: 7}},
		{"decrement_default", blog.TargetEpisodes, blog.ActionDecrement, nil, blog.CounterState{Episodes: 9, Chapters: 3}},
		{"decrement_floors_at_zero", blog.TargetChapters, blog.ActionDecrement, pointer.To(9), blog.CounterState{Episodes: 10, Chapters: 0}},
		{"set", blog.TargetEpisodes, blog.ActionSet, pointer.To(24), blog.CounterState{Episodes: 24, Chapters: 3}},
		{"set_zero", blog.TargetChapters, blog.ActionSet, pointer.To(0), blog.CounterState{Episodes: 10, Chapters: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newEntry(func(b *blog.Blog) { b.Episodes, b.Chapters = 10, 3 })
			service, _ := newService(item)

			state, err := service.AdjustCounter(context.Background(), item.BlogID, tt.target, tt.action, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestAdjustCounter_Invalid(t *testing.T) {
	item := newEntry()
	service, _ := newService(item)
	ctx := context.Background()

	tests := []struct {
		name   string
		target blog.CounterTarget
		action blog.CounterAction
		value  *int
		field  string
	}{
		{"bad_target", "seasons", blog.ActionIncrement, nil, blog.FieldTarget},
		{"bad_action", blog.TargetEpisodes, "multiply", nil, blog.FieldAction},
		{"set_without_value", blog.TargetEpisodes, blog.ActionSet, nil, blog.FieldValue},
		{"set_negative", blog.TargetEpisodes, blog.ActionSet, pointer.To(-1), blog.FieldValue},
		{"increment_zero", blog.TargetEpisodes, blog.ActionIncrement, pointer.To(0), blog.FieldValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AdjustCounter(ctx, item.BlogID, tt.target, tt.action, tt.value)
			assert.Equal(t, []string{tt.field}, invalidFields(t, err))
		})
	}

	_, err := service.AdjustCounter(ctx, "missing", blog.TargetEpisodes, blog.ActionIncrement, nil)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

// # Jobs

func TestWarmSections(t *testing.T) {
	repository := newMemoryRepository(newEntry())
	service := blog.NewService(repository, cache.NewMemoryStore(), time.Minute, discardLogger())
	ctx := context.Background()

	require.NoError(t, service.WarmSections(ctx))
	warmed := repository.topNCalls
	assert.Equal(t, (len(blog.Categories)+1)*len(blog.AllSections), warmed)

	for _, category := range append([]blog.Category{""}, blog.Categories...) {
		_, err := service.HomeSections(ctx, category)
		require.NoError(t, err)
	}
	assert.Equal(t, warmed, repository.topNCalls, "every landing page served from cache")
}

func TestWarmSections_WithoutCache(t *testing.T) {
	service, repository := newService(newEntry())

	require.NoError(t, service.WarmSections(context.Background()))
	assert.Zero(t, repository.topNCalls)
}

/*
TestReconcileRatings rewrites aggregates that disagree with the rating rows.
*/
func TestReconcileRatings(t *testing.T) {
	drifted := newEntry(func(b *blog.Blog) {
		b.UserRatings = []blog.UserRating{{UserID: "a", Rating: 4}, {UserID: "b", Rating: 2}}
		b.OverallRating, b.TotalRatings = 5, 3
	})
	healthy := newEntry()
	service, _ := newService(drifted, healthy)
	ctx := context.Background()

	require.NoError(t, service.ReconcileRatings(ctx))

	stored, err := service.GetBlog(ctx, drifted.BlogID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stored.OverallRating)
	assert.Equal(t, 2, stored.TotalRatings)

	stored, err = service.GetBlog(ctx, healthy.BlogID)
	require.NoError(t, err)
	assert.Zero(t, stored.TotalRatings)
}
