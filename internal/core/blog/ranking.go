// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "time"

// # Home Sections

const (
	// SectionSize bounds every ranked section.
	SectionSize = 3

	// AdminRatingWeight and UserRatingWeight blend the two ratings for the
	// highest rated section.
	AdminRatingWeight = 0.6
	UserRatingWeight  = 0.4

	// TrendingWindow is how far back updatedAt may lie for an entry to trend.
	// The bound is taken when the sections are computed, so a cached payload
	// can still list an entry that aged out up to the cache TTL ago. Writes
	// invalidate the cache; plain ageing does not.
	TrendingWindow = 7 * 24 * time.Hour
)

// Section names one ranked list of the landing page.
type Section string

const (
	SectionHighestRated    Section = "highestRated"
	SectionMostPopular     Section = "mostPopular"
	SectionRecentlyUpdated Section = "recentlyUpdated"
	SectionTrending        Section = "trending"
	SectionNewest          Section = "newest"
)

// AllSections lists the sections in response order.
var AllSections = []Section{
	SectionHighestRated,
	SectionMostPopular,
	SectionRecentlyUpdated,
	SectionTrending,
	SectionNewest,
}

var sectionPlans = map[Section][]orderTerm{
	SectionHighestRated:    {byBlended, byTotal},
	SectionMostPopular:     {byViews, byTotal},
	SectionRecentlyUpdated: {byUpdatedAt},
	SectionTrending:        {byViews, byUpdatedAt},
	SectionNewest:          {byRelease},
}

// OrderBy renders the ORDER BY list for the section, tie-break included.
func (section Section) OrderBy() string {
	return renderOrder(sectionPlans[section])
}

// WindowStart returns the earliest updatedAt admitted into the section at
// now, and false for sections without a window. The bound is inclusive.
func (section Section) WindowStart(now time.Time) (time.Time, bool) {
	if section != SectionTrending {
		return time.Time{}, false
	}
	return now.Add(-TrendingWindow), true
}

// Sections is the landing page payload. Every list is non-nil.
type Sections struct {
	HighestRated    []*Blog `json:"highestRated"`
	MostPopular     []*Blog `json:"mostPopular"`
	RecentlyUpdated []*Blog `json:"recentlyUpdated"`
	Trending        []*Blog `json:"trending"`
	Newest          []*Blog `json:"newest"`
}

// set stores items under section.
func (sections *Sections) set(section Section, items []*Blog) {
	if items == nil {
		items = []*Blog{}
	}
	switch section {
	case SectionHighestRated:
		sections.HighestRated = items
	case SectionMostPopular:
		sections.MostPopular = items
	case SectionRecentlyUpdated:
		sections.RecentlyUpdated = items
	case SectionTrending:
		sections.Trending = items
	case SectionNewest:
		sections.Newest = items
	}
}

// summarize strips an entry down to what a section card shows: the author
// keeps only the username and per-user ratings are dropped.
func summarize(blog *Blog) *Blog {
	card := *blog
	card.UserRatings = nil
	if blog.Author != nil {
		card.Author = &AuthorRef{Username: blog.Author.Username}
	}
	return &card
}
