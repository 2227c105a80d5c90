// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/weebtsuki/internal/core/blog"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/cache"
)

// memoryRepository is an in-memory [blog.BlogRepository]. It orders rows by
// interpreting the ORDER BY lists the SQL repository is generated from.
type memoryRepository struct {
	mu        sync.Mutex
	blogs     map[string]*blog.Blog
	topNCalls int
	topNErr   error
}

var _ blog.BlogRepository = (*memoryRepository)(nil)

func newMemoryRepository(blogs ...*blog.Blog) *memoryRepository {
	repository := &memoryRepository{blogs: make(map[string]*blog.Blog)}
	for _, item := range blogs {
		repository.blogs[item.BlogID] = clone(item)
	}
	return repository
}

func clone(item *blog.Blog) *blog.Blog {
	copied := *item
	copied.Genres = slices.Clone(item.Genres)
	copied.AlternativeNames = slices.Clone(item.AlternativeNames)
	copied.UserRatings = slices.Clone(item.UserRatings)
	if item.Author != nil {
		author := *item.Author
		copied.Author = &author
	}
	return &copied
}

func (repository *memoryRepository) get(blogID string) (*blog.Blog, error) {
	item, ok := repository.blogs[blogID]
	if !ok {
		return nil, apperr.NotFound("Blog")
	}
	return item, nil
}

func (repository *memoryRepository) List(_ context.Context, query blog.ListQuery) ([]*blog.Blog, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var matched []*blog.Blog
	for _, item := range repository.blogs {
		if matches(query.Filter, item) {
			summary := clone(item)
			summary.UserRatings = nil
			matched = append(matched, summary)
		}
	}
	slices.SortFunc(matched, orderBy(query.Sort.OrderBy()))

	start := min(query.Page.Offset(), len(matched))
	end := min(start+query.Page.Limit, len(matched))
	page := append([]*blog.Blog{}, matched[start:end]...)

	return page, len(matched), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, blogID string) (*blog.Blog, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, err := repository.get(blogID)
	if err != nil {
		return nil, err
	}
	return clone(item), nil
}

func (repository *memoryRepository) FindBySlug(_ context.Context, slug string) (*blog.Blog, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, item := range repository.blogs {
		if item.Slug == slug {
			return clone(item), nil
		}
	}
	return nil, apperr.NotFound("Blog")
}

func (repository *memoryRepository) ResolveID(_ context.Context, identifier string) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, item := range repository.blogs {
		if item.BlogID == identifier || item.Slug == identifier {
			return item.BlogID, nil
		}
	}
	return "", apperr.NotFound("Blog")
}

func (repository *memoryRepository) Create(_ context.Context, item *blog.Blog) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.blogs {
		if existing.Slug == item.Slug || existing.BlogID == item.BlogID {
			return apperr.Conflict("Blog already exists")
		}
	}

	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	repository.blogs[item.BlogID] = clone(item)
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, item *blog.Blog, patch blog.BlogPatch) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, err := repository.get(item.BlogID)
	if err != nil {
		return err
	}

	if patch.Episodes == nil {
		item.Episodes = existing.Episodes
	}
	if patch.Chapters == nil {
		item.Chapters = existing.Chapters
	}
	item.UpdatedAt = time.Now().UTC()
	item.Views = existing.Views
	item.OverallRating, item.TotalRatings = existing.OverallRating, existing.TotalRatings
	item.UserRatings = existing.UserRatings
	repository.blogs[item.BlogID] = clone(item)
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, blogID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, err := repository.get(blogID); err != nil {
		return err
	}
	delete(repository.blogs, blogID)
	return nil
}

func (repository *memoryRepository) AdjustCounter(_ context.Context, blogID string, target blog.CounterTarget, action blog.CounterAction, value int) (blog.CounterState, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, err := repository.get(blogID)
	if err != nil {
		return blog.CounterState{}, err
	}

	counter := &item.Episodes
	if target == blog.TargetChapters {
		counter = &item.Chapters
	}
	switch action {
	case blog.ActionIncrement:
		*counter += value
	case blog.ActionDecrement:
		*counter = max(*counter-value, 0)
	case blog.ActionSet:
		*counter = value
	}

	return blog.CounterState{Episodes: item.Episodes, Chapters: item.Chapters}, nil
}

func (repository *memoryRepository) UpsertRating(_ context.Context, blogID, userID string, rating float64) (blog.RatingSummary, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, err := repository.get(blogID)
	if err != nil {
		return blog.RatingSummary{}, err
	}

	item.UserRatings = applyRating(item.UserRatings, userID, rating, time.Now())
	summary := summarizeRatings(item.UserRatings)
	item.OverallRating, item.TotalRatings = summary.OverallRating, summary.TotalRatings
	return summary, nil
}

func (repository *memoryRepository) IncrementViews(_ context.Context, blogID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, err := repository.get(blogID)
	if err != nil {
		return err
	}
	item.Views++
	return nil
}

func (repository *memoryRepository) TopN(_ context.Context, section blog.Section, category blog.Category, now time.Time, limit int) ([]*blog.Blog, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.topNCalls++
	if repository.topNErr != nil {
		return nil, repository.topNErr
	}

	var ranked []*blog.Blog
	for _, item := range repository.blogs {
		if category != "" && item.Category != category {
			continue
		}
		if start, windowed := section.WindowStart(now); windowed && item.UpdatedAt.Before(start) {
			continue
		}
		card := clone(item)
		card.UserRatings = nil
		if card.Author != nil {
			card.Author = &blog.AuthorRef{Username: card.Author.Username}
		}
		ranked = append(ranked, card)
	}
	slices.SortFunc(ranked, orderBy(section.OrderBy()))

	return ranked[:min(limit, len(ranked))], nil
}

func (repository *memoryRepository) ReconcileRatings(_ context.Context) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	corrected := 0
	for _, item := range repository.blogs {
		summary := summarizeRatings(item.UserRatings)
		if summary.TotalRatings != item.TotalRatings || summary.OverallRating != item.OverallRating {
			item.OverallRating, item.TotalRatings = summary.OverallRating, summary.TotalRatings
			corrected++
		}
	}
	return corrected, nil
}

// views returns the stored view count of blogID.
func (repository *memoryRepository) views(blogID string) int64 {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.blogs[blogID].Views
}

// # In-memory query semantics

// blendedScore weighs the admin rating against the readers' mean.
func blendedScore(item *blog.Blog) float64 {
	return blog.AdminRatingWeight*item.AdminRating + blog.UserRatingWeight*item.OverallRating
}

// columnComparators order two entries descending by one ORDER BY term.
var columnComparators = map[string]func(a, b *blog.Blog) int{
	"b.createdat":     func(a, b *blog.Blog) int { return b.CreatedAt.Compare(a.CreatedAt) },
	"b.updatedat":     func(a, b *blog.Blog) int { return b.UpdatedAt.Compare(a.UpdatedAt) },
	"b.releasedate":   func(a, b *blog.Blog) int { return b.ReleaseDate.Compare(a.ReleaseDate) },
	"b.views":         func(a, b *blog.Blog) int { return cmp.Compare(b.Views, a.Views) },
	"b.overallrating": func(a, b *blog.Blog) int { return cmp.Compare(b.OverallRating, a.OverallRating) },
	"b.totalratings":  func(a, b *blog.Blog) int { return cmp.Compare(b.TotalRatings, a.TotalRatings) },
	"b.blogid":        func(a, b *blog.Blog) int { return strings.Compare(b.BlogID, a.BlogID) },
	fmt.Sprintf("(%g * b.adminrating + %g * b.overallrating)", blog.AdminRatingWeight, blog.UserRatingWeight): func(a, b *blog.Blog) int {
		return cmp.Compare(blendedScore(b), blendedScore(a))
	},
}

// orderBy turns an ORDER BY list into a comparator. Unknown terms panic so a
// new ordering cannot silently go untested.
func orderBy(list string) func(a, b *blog.Blog) int {
	var comparators []func(a, b *blog.Blog) int
	for _, term := range strings.Split(list, ", ") {
		column, ok := strings.CutSuffix(term, " DESC")
		compare, known := columnComparators[column]
		if !ok || !known {
			panic("unsupported order term " + term)
		}
		comparators = append(comparators, compare)
	}

	return func(a, b *blog.Blog) int {
		for _, compare := range comparators {
			if result := compare(a, b); result != 0 {
				return result
			}
		}
		return 0
	}
}

// matches mirrors the WHERE clause built for filter.
func matches(filter blog.Filter, item *blog.Blog) bool {
	if category, ok := filter.CategoryConstraint(); ok && item.Category != category {
		return false
	}
	if status, ok := filter.StatusConstraint(); ok && item.Status != status {
		return false
	}
	if len(filter.Genres) > 0 && !slices.ContainsFunc(filter.Genres, func(genre blog.Genre) bool {
		return slices.Contains(item.Genres, genre)
	}) {
		return false
	}
	if filter.Query != "" && !matchesText(filter.Query, item) {
		return false
	}
	return true
}

func matchesText(needle string, item *blog.Blog) bool {
	needle = strings.ToLower(needle)
	haystack := append([]string{item.Title, item.Content}, item.AlternativeNames...)
	return slices.ContainsFunc(haystack, func(text string) bool {
		return strings.Contains(strings.ToLower(text), needle)
	})
}

// applyRating upserts userID's rating, keeping an existing entry in place.
func applyRating(ratings []blog.UserRating, userID string, value float64, now time.Time) []blog.UserRating {
	for index := range ratings {
		if ratings[index].UserID == userID {
			ratings[index].Rating = value
			return ratings
		}
	}
	return append(ratings, blog.UserRating{UserID: userID, Rating: value, CreatedAt: now})
}

// summarizeRatings mirrors the AVG/COUNT recompute. Empty sets are zero.
func summarizeRatings(ratings []blog.UserRating) blog.RatingSummary {
	if len(ratings) == 0 {
		return blog.RatingSummary{}
	}
	var sum float64
	for _, rating := range ratings {
		sum += rating.Rating
	}
	return blog.RatingSummary{OverallRating: sum / float64(len(ratings)), TotalRatings: len(ratings)}
}

// failingCache is a [cache.Store] whose every call fails.
type failingCache struct{}

var _ cache.Store = failingCache{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Delete(context.Context, ...string) error {
	return errors.New("cache down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
