// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"fmt"
	"strings"

	"github.com/taibuivan/weebtsuki/internal/platform/validate"
)

// # Field Rules

func checkTitle(validator *validate.Validator, title string) {
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
}

func checkContent(validator *validate.Validator, content string) {
	validator.Required(FieldContent, content)
}

func checkCategory(validator *validate.Validator, category Category) {
	validator.OneOf(FieldCategory, string(category),
		string(CategoryAnime),
		string(CategoryManhwa),
		string(CategoryManhua),
		string(CategoryManga),
	)
}

func checkStatus(validator *validate.Validator, status Status) {
	validator.OneOf(FieldStatus, string(status),
		string(StatusOngoing),
		string(StatusHiatus),
		string(StatusCancelled),
		string(StatusCompleted),
	)
}

func checkGenres(validator *validate.Validator, genres []Genre) {
	for _, genre := range genres {
		validator.Custom(FieldGenres, !genre.IsValid(), fmt.Sprintf("Unknown genre %q", genre))
	}
}

func checkAdminRating(validator *validate.Validator, rating float64) {
	validator.FloatRange(FieldAdminRating, rating, MinRating, MaxRating)
}

func checkCounter(validator *validate.Validator, field string, value int) {
	validator.Min(field, value, 0)
}

func checkAlternativeNames(validator *validate.Validator, names []string) {
	validator.Custom(FieldAlternativeNames, len(names) > MaxAlternativeNames,
		fmt.Sprintf("At most %d alternative names", MaxAlternativeNames))
}

// # Normalization

// normalize trims free text, drops blank alternative names and removes
// duplicate genres while keeping their order.
func normalize(blog *Blog) {
	blog.Title = strings.TrimSpace(blog.Title)
	blog.ImageURL = strings.TrimSpace(blog.ImageURL)

	names := make([]string, 0, len(blog.AlternativeNames))
	for _, name := range blog.AlternativeNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	blog.AlternativeNames = names

	genres := make([]Genre, 0, len(blog.Genres))
	seen := make(map[Genre]struct{}, len(blog.Genres))
	for _, genre := range blog.Genres {
		if _, dup := seen[genre]; dup {
			continue
		}
		seen[genre] = struct{}{}
		genres = append(genres, genre)
	}
	blog.Genres = genres
}

// # Patch

// validate checks every field the patch sets.
func (patch BlogPatch) validate() error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		checkTitle(validator, strings.TrimSpace(*patch.Title))
	}
	if patch.Content != nil {
		checkContent(validator, *patch.Content)
	}
	if patch.Category != nil {
		checkCategory(validator, *patch.Category)
	}
	if patch.Status != nil {
		checkStatus(validator, *patch.Status)
	}
	if patch.Genres != nil {
		checkGenres(validator, *patch.Genres)
	}
	if patch.AdminRating != nil {
		checkAdminRating(validator, *patch.AdminRating)
	}
	if patch.Episodes != nil {
		checkCounter(validator, FieldEpisodes, *patch.Episodes)
	}
	if patch.Chapters != nil {
		checkCounter(validator, FieldChapters, *patch.Chapters)
	}
	if patch.AlternativeNames != nil {
		checkAlternativeNames(validator, *patch.AlternativeNames)
	}
	if patch.ReadingReview != nil {
		validator.MaxLen(FieldReadingReview, *patch.ReadingReview, MaxReadingReviewLength)
	}

	return validator.Err()
}

// apply copies every set field onto blog.
func (patch BlogPatch) apply(blog *Blog) {
	if patch.Title != nil {
		blog.Title = *patch.Title
	}
	if patch.Content != nil {
		blog.Content = *patch.Content
	}
	if patch.ImageURL != nil {
		blog.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		blog.Category = *patch.Category
	}
	if patch.Genres != nil {
		blog.Genres = *patch.Genres
	}
	if patch.Status != nil {
		blog.Status = *patch.Status
	}
	if patch.AdminRating != nil {
		blog.AdminRating = *patch.AdminRating
	}
	if patch.Episodes != nil {
		blog.Episodes = *patch.Episodes
	}
	if patch.Chapters != nil {
		blog.Chapters = *patch.Chapters
	}
	if patch.AlternativeNames != nil {
		blog.AlternativeNames = *patch.AlternativeNames
	}
	if patch.ReadingReview != nil {
		blog.ReadingReview = *patch.ReadingReview
	}
	if patch.IsPinned != nil {
		blog.IsPinned = *patch.IsPinned
	}
	if patch.ShowUserRatings != nil {
		blog.ShowUserRatings = *patch.ShowUserRatings
	}
	if patch.ReleaseDate != nil {
		blog.ReleaseDate = *patch.ReleaseDate
	}
}
