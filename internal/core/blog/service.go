// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/cache"
	"github.com/taibuivan/weebtsuki/internal/platform/constants"
	"github.com/taibuivan/weebtsuki/internal/platform/validate"
	"github.com/taibuivan/weebtsuki/pkg/pagination"
	"github.com/taibuivan/weebtsuki/pkg/slug"
	"github.com/taibuivan/weebtsuki/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic of the catalogue.
type Service struct {
	repository BlogRepository
	sections   cache.Store
	sectionTTL time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a [Service]. sectionCache may be nil, in which case
// every landing page request is computed from the store.
func NewService(repository BlogRepository, sectionCache cache.Store, sectionTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		sections:   sectionCache,
		sectionTTL: sectionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// # Discovery

/*
ListBlogs returns one page of entries.

Description: Resolves sort aliases, validates every parameter before
touching the store, and derives the pagination metadata from the filter
total.

Parameters:
  - context: context.Context
  - query: ListQuery

Returns:
  - *ListResult: Page of entries and pagination
  - error: apperr.ValidationError for bad parameters
*/
func (service *Service) ListBlogs(context context.Context, query ListQuery) (*ListResult, error) {
	query.Sort = query.Sort.Canonical()
	query.Page = query.Page.Clamped()

	if err := query.Validate(); err != nil {
		return nil, err
	}

	blogs, total, err := service.repository.List(context, query)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Blogs:      blogs,
		Pagination: pagination.NewMeta(query.Page, len(blogs), total),
	}, nil
}

/*
GetBlog fetches one entry by blogId or slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or slug)

Returns:
  - *Blog: Entry with ratings and author
  - error: apperr.NotFound if missing
*/
func (service *Service) GetBlog(context context.Context, identifier string) (*Blog, error) {
	if uuid.IsValid(identifier) {
		return service.repository.FindByID(context, identifier)
	}
	return service.repository.FindBySlug(context, identifier)
}

// ResolveID maps a blogId or slug to the blogId.
func (service *Service) ResolveID(context context.Context, identifier string) (string, error) {
	return service.repository.ResolveID(context, strings.TrimSpace(identifier))
}

// # Management

/*
CreateBlog publishes a new entry.

Description: Validates the payload, assigns a UUIDv7 blogId and a slug
derived from the title, and fills the documented defaults. When the slug is
taken the blogId suffix is appended and the insert retried once.

Parameters:
  - context: context.Context
  - author: AuthorRef (publishing admin)
  - blog: *Blog

Returns:
  - error: apperr.ValidationError or storage errors
*/
func (service *Service) CreateBlog(context context.Context, author AuthorRef, blog *Blog) error {
	normalize(blog)

	// ── 1. Defaults ───────────────────────────────────────────────────
	if blog.Status == "" {
		blog.Status = StatusOngoing
	}
	if blog.ReleaseDate.IsZero() {
		blog.ReleaseDate = service.now().UTC()
	}

	// ── 2. Validation ─────────────────────────────────────────────────
	validator := &validate.Validator{}
	checkTitle(validator, blog.Title)
	checkContent(validator, blog.Content)
	checkCategory(validator, blog.Category)
	checkStatus(validator, blog.Status)
	checkGenres(validator, blog.Genres)
	checkAdminRating(validator, blog.AdminRating)
	checkCounter(validator, FieldEpisodes, blog.Episodes)
	checkCounter(validator, FieldChapters, blog.Chapters)
	checkAlternativeNames(validator, blog.AlternativeNames)
	validator.MaxLen(FieldReadingReview, blog.ReadingReview, MaxReadingReviewLength)
	if err := validator.Err(); err != nil {
		return err
	}

	// ── 3. Identity ───────────────────────────────────────────────────
	blog.BlogID = uuid.New()
	blog.Slug = slug.From(blog.Title)
	if blog.Slug == "" {
		blog.Slug = blog.BlogID
	}
	if author.ID != "" {
		blog.Author = &author
	}

	// ── 4. Persistence ────────────────────────────────────────────────
	err := service.repository.Create(context, blog)
	if apperr.IsCode(err, apperr.CodeConflict) && blog.Slug != blog.BlogID {
		blog.Slug = fmt.Sprintf("%s-%s", blog.Slug, blog.BlogID[len(blog.BlogID)-8:])
		err = service.repository.Create(context, blog)
	}
	if err != nil {
		return err
	}

	service.logger.InfoContext(context, "blog_created",
		slog.String("blog_id", blog.BlogID),
		slog.String("title", blog.Title),
	)
	service.invalidateSections(context)

	return nil
}

/*
UpdateBlog applies a partial update.

Description: The patch is validated before the entry is loaded. blogId,
slug and the rating aggregates cannot be changed here.

Parameters:
  - context: context.Context
  - identifier: string (UUID or slug)
  - patch: BlogPatch

Returns:
  - *Blog: Entry after the update
  - error: apperr.ValidationError, apperr.NotFound or storage errors
*/
func (service *Service) UpdateBlog(context context.Context, identifier string, patch BlogPatch) (*Blog, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	blog, err := service.GetBlog(context, identifier)
	if err != nil {
		return nil, err
	}

	patch.apply(blog)
	normalize(blog)

	if err := service.repository.Update(context, blog, patch); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "blog_updated", slog.String("blog_id", blog.BlogID))
	service.invalidateSections(context)

	return blog, nil
}

// DeleteBlog removes an entry with its ratings and comments.
func (service *Service) DeleteBlog(context context.Context, identifier string) error {
	blogID, err := service.ResolveID(context, identifier)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, blogID); err != nil {
		return err
	}

	service.logger.WarnContext(context, "blog_deleted", slog.String("blog_id", blogID))
	service.invalidateSections(context)

	return nil
}

/*
AdjustCounter increments, decrements or sets episodes or chapters.

Description: value is the step for increment and decrement (default 1) and
the new count for set. Decrements stop at zero.

Parameters:
  - context: context.Context
  - identifier: string
  - target: CounterTarget
  - action: CounterAction
  - value: *int (optional for increment/decrement)

Returns:
  - CounterState: Both counters after the write
  - error: apperr.ValidationError or apperr.NotFound
*/
func (service *Service) AdjustCounter(context context.Context, identifier string, target CounterTarget, action CounterAction, value *int) (CounterState, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldTarget, !target.IsValid(), "Must be one of: episodes, chapters")
	validator.Custom(FieldAction, !action.IsValid(), "Must be one of: increment, decrement, set")

	amount := 1
	switch {
	case action == ActionSet && value == nil:
		validator.Custom(FieldValue, true, "This field is required")
	case action == ActionSet:
		amount = *value
		validator.Min(FieldValue, amount, 0)
	case value != nil:
		amount = *value
		validator.Min(FieldValue, amount, 1)
	}

	if err := validator.Err(); err != nil {
		return CounterState{}, err
	}

	blogID, err := service.ResolveID(context, identifier)
	if err != nil {
		return CounterState{}, err
	}

	return service.repository.AdjustCounter(context, blogID, target, action, amount)
}

// # Ratings

/*
SubmitRating records userID's rating for an entry.

Description: The value is checked before anything is read, so an
out-of-range rating never reaches the store. A repeated submission from the
same reader replaces the earlier one.

Parameters:
  - context: context.Context
  - identifier: string
  - userID: string
  - rating: float64 in [0, 5]

Returns:
  - RatingSummary: overallRating and totalRatings after the write
  - error: apperr.ValidationError or apperr.NotFound
*/
func (service *Service) SubmitRating(context context.Context, identifier, userID string, rating float64) (RatingSummary, error) {
	if err := ValidateRating(FieldRating, rating); err != nil {
		return RatingSummary{}, err
	}

	blogID, err := service.ResolveID(context, identifier)
	if err != nil {
		return RatingSummary{}, err
	}

	summary, err := service.repository.UpsertRating(context, blogID, userID, rating)
	if err != nil {
		return RatingSummary{}, err
	}

	service.logger.DebugContext(context, "blog_rated",
		slog.String("blog_id", blogID),
		slog.String("user_id", userID),
		slog.Float64("overall_rating", summary.OverallRating),
		slog.Int("total_ratings", summary.TotalRatings),
	)

	return summary, nil
}

// # Landing Page

/*
HomeSections returns the five ranked sections for a category.

Description: Served from the section cache when possible. Cache failures
are logged and the sections are computed from the store instead.

Parameters:
  - context: context.Context
  - category: Category (empty or "All" for every category)

Returns:
  - *Sections: Five lists, each possibly empty
  - error: apperr.ValidationError for an unknown category
*/
func (service *Service) HomeSections(context context.Context, category Category) (*Sections, error) {
	category, err := sectionCategory(category)
	if err != nil {
		return nil, err
	}

	key := sectionKey(category)

	if service.sections != nil {
		cached := &Sections{}
		found, err := cache.GetJSON(context, service.sections, key, cached)
		if err != nil {
			service.logger.WarnContext(context, "home_sections_cache_read_failed", slog.Any("error", err))
		}
		if found {
			return cached, nil
		}
	}

	sections, err := service.computeSections(context, category)
	if err != nil {
		return nil, err
	}

	service.storeSections(context, key, sections)
	return sections, nil
}

// computeSections ranks every section at a single evaluation instant.
func (service *Service) computeSections(context context.Context, category Category) (*Sections, error) {
	now := service.now()
	sections := &Sections{}

	for _, section := range AllSections {
		items, err := service.repository.TopN(context, section, category, now, SectionSize)
		if err != nil {
			return nil, err
		}
		sections.set(section, items)
	}

	return sections, nil
}

func (service *Service) storeSections(context context.Context, key string, sections *Sections) {
	if service.sections == nil {
		return
	}
	if err := cache.SetJSON(context, service.sections, key, sections, service.sectionTTL); err != nil {
		service.logger.WarnContext(context, "home_sections_cache_write_failed", slog.Any("error", err))
	}
}

// invalidateSections drops every cached landing page after an editorial
// write.
func (service *Service) invalidateSections(context context.Context) {
	if service.sections == nil {
		return
	}

	keys := []string{sectionKey("")}
	for _, category := range Categories {
		keys = append(keys, sectionKey(category))
	}

	if err := service.sections.Delete(context, keys...); err != nil {
		service.logger.WarnContext(context, "home_sections_cache_invalidate_failed", slog.Any("error", err))
	}
}

// sectionCategory folds the "All" wildcard into the empty category.
func sectionCategory(category Category) (Category, error) {
	category = Category(strings.TrimSpace(string(category)))
	if category == "" || category == CategoryAll {
		return "", nil
	}
	if !category.IsValid() {
		return "", validate.RequiredError(FieldCategory, "Unknown category")
	}
	return category, nil
}

func sectionKey(category Category) string {
	if category == "" {
		return constants.RedisPrefixHomeSections + "all"
	}
	return constants.RedisPrefixHomeSections + strings.ToLower(string(category))
}
