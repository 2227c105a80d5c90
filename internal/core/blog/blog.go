// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog defines the catalogue of WeebTsuki entries and the logic that
ranks them.

An entry (a [Blog]) describes one Anime, Manga, Manhwa or Manhua title. Admins
publish and edit entries; readers rate them, comment on them and browse them.

Core Responsibility:

  - Rating: one rating per reader, aggregated into a stored mean and count.
  - Discovery: filtered, sorted, paginated listing.
  - Landing page: five ranked sections of three entries each.
  - Analytics: a fire-and-forget view counter.
*/
package blog

import "time"

// # Domain Enums

// Category is the medium an entry belongs to.
type Category string

const (
	CategoryAnime  Category = "Anime"
	CategoryManhwa Category = "Manhwa"
	CategoryManhua Category = "Manhua"
	CategoryManga  Category = "Manga"

	// CategoryAll is accepted by filters and means "no constraint". It is
	// never stored.
	CategoryAll Category = "All"
)

// Categories lists every storable [Category].
var Categories = []Category{CategoryAnime, CategoryManhwa, CategoryManhua, CategoryManga}

// IsValid reports whether c is a storable category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryAnime, CategoryManhwa, CategoryManhua, CategoryManga:
		return true
	}
	return false
}

// Status is the publication state of the title an entry describes.
type Status string

const (
	StatusOngoing   Status = "Ongoing"
	StatusHiatus    Status = "Hiatus"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"

	// StatusAll is the filter wildcard.
	StatusAll Status = "All"
)

// IsValid reports whether s is a storable status.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusHiatus, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Genre is a tag from the fixed genre vocabulary.
type Genre string

// Genres is the complete vocabulary, in display order.
var Genres = []Genre{
	"Action", "Adaptation", "Adult", "Adventure", "Animal", "Anthology", "Cartoon",
	"Comedy", "Comic", "Cooking", "Cultivation", "Demons", "Doujinshi", "Drama",
	"Ecchi", "Fantasy", "Full Color", "Game", "Gender bender", "Ghosts", "Harem",
	"Historical", "Horror", "Isekai", "Josei", "Long strip", "Mafia", "Magic",
	"Manga", "Manhua", "Manhwa", "Martial arts", "Mature", "Mecha", "Medical",
	"Military", "Monster", "Monster girls", "Monsters", "Music", "Mystery",
	"Office", "Office workers", "One shot", "Police", "Psychological",
	"Reincarnation", "Romance", "School life", "Sci fi", "Science fiction",
	"Seinen", "Shoujo", "Shoujo ai", "Shounen", "Shounen ai", "Slice of life",
	"Smut", "Soft Yaoi", "Sports", "Super Power", "Superhero", "Supernatural",
	"Thriller", "Time travel", "Tragedy", "Vampire", "Vampires", "Video games",
	"Villainess", "Web comic", "Webtoons", "Yaoi", "Yuri", "Zombies",
}

var genreSet = func() map[Genre]struct{} {
	set := make(map[Genre]struct{}, len(Genres))
	for _, genre := range Genres {
		set[genre] = struct{}{}
	}
	return set
}()

// IsValid reports whether g belongs to the vocabulary. Matching is exact.
func (g Genre) IsValid() bool {
	_, ok := genreSet[g]
	return ok
}

// # Core Entities

// Blog is a single catalogue entry.
//
// OverallRating and TotalRatings are derived from UserRatings and are only
// written by the rating aggregator. AdminRating is stored on its own and
// blended with OverallRating at read time.
type Blog struct {
	BlogID           string       `json:"blogId"`
	Slug             string       `json:"slug"`
	Title            string       `json:"title"`
	Content          string       `json:"content"`
	ImageURL         string       `json:"imageUrl"`
	Author           *AuthorRef   `json:"author,omitempty"`
	Category         Category     `json:"category"`
	Genres           []Genre      `json:"genres"`
	Status           Status       `json:"status"`
	AdminRating      float64      `json:"adminRating"`
	UserRatings      []UserRating `json:"userRatings,omitempty"`
	OverallRating    float64      `json:"overallRating"`
	TotalRatings     int          `json:"totalRatings"`
	Episodes         int          `json:"episodes"`
	Chapters         int          `json:"chapters"`
	AlternativeNames []string     `json:"alternativeNames"`
	ReadingReview    string       `json:"readingReview"`
	IsPinned         bool         `json:"isPinned"`
	ShowUserRatings  bool         `json:"showUserRatings"`
	Views            int64        `json:"views"`
	ReleaseDate      time.Time    `json:"releaseDate"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// AuthorRef is the public projection of the account that published an entry.
// Ranked sections carry the username only.
type AuthorRef struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
}

// UserRating is one reader's score for an entry.
type UserRating struct {
	UserID    string    `json:"user"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogPatch carries the fields of a partial update. Nil means "unchanged".
type BlogPatch struct {
	Title            *string
	Content          *string
	ImageURL         *string
	Category         *Category
	Genres           *[]Genre
	Status           *Status
	AdminRating      *float64
	Episodes         *int
	Chapters         *int
	AlternativeNames *[]string
	ReadingReview    *string
	IsPinned         *bool
	ShowUserRatings  *bool
	ReleaseDate      *time.Time
}

// # Validation Limits

const (
	MaxTitleLength         = 500
	MaxAlternativeNames    = 50
	MaxReadingReviewLength = 20000
)

// # Field Names

const (
	FieldTitle            = "title"
	FieldContent          = "content"
	FieldImageURL         = "imageUrl"
	FieldCategory         = "category"
	FieldGenres           = "genres"
	FieldStatus           = "status"
	FieldAdminRating      = "adminRating"
	FieldRating           = "rating"
	FieldEpisodes         = "episodes"
	FieldChapters         = "chapters"
	FieldAlternativeNames = "alternativeNames"
	FieldReadingReview    = "readingReview"
	FieldSortBy           = "sortBy"
	FieldPage             = "page"
	FieldLimit            = "limit"
	FieldTarget           = "target"
	FieldAction           = "action"
	FieldValue            = "value"
)
