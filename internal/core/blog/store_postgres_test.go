// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weebtsuki/internal/core/blog"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/pkg/pagination"
)

func newMockRepository(t *testing.T) (blog.BlogRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return blog.NewBlogRepository(mock), mock
}

/*
TestRepository_UpsertRating runs lock, upsert and recompute in one transaction.
*/
func TestRepository_UpsertRating(t *testing.T) {
	repository, mock := newMockRepository(t)
	blogID := "0190a5e2-7f00-7000-8000-000000000001"

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM core\.blog WHERE blogid = \$1 FOR UPDATE`).
		WithArgs(blogID).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(1))
	mock.ExpectExec(`(?s)INSERT INTO core\.blograting \(blogid, userid, rating\) VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(blogid, userid\) DO UPDATE SET rating = EXCLUDED\.rating`).
		WithArgs(blogID, "reader-1", 4.5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`(?s)UPDATE core\.blog b SET.*AVG\(rating\).*COUNT\(\*\).*WHERE b\.blogid = \$1\s+RETURNING b\.overallrating, b\.totalratings`).
		WithArgs(blogID).
		WillReturnRows(mock.NewRows([]string{"overallrating", "totalratings"}).AddRow(4.25, 2))
	mock.ExpectCommit()

	summary, err := repository.UpsertRating(context.Background(), blogID, "reader-1", 4.5)
	require.NoError(t, err)

	assert.Equal(t, blog.RatingSummary{OverallRating: 4.25, TotalRatings: 2}, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertRating_MissingBlog(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("missing").
		WillReturnRows(mock.NewRows([]string{"exists"}))
	mock.ExpectRollback()

	_, err := repository.UpsertRating(context.Background(), "missing", "reader-1", 3)

	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestRepository_TopN checks the section window is bound as an argument and
only for the trending section.
*/
func TestRepository_TopN(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("trending_binds_window_start", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectQuery(`WHERE TRUE AND b\.category = \$1 AND b\.updatedat >= \$2 ORDER BY b\.views DESC, b\.updatedat DESC, b\.blogid DESC LIMIT \$3$`).
			WithArgs("Manga", now.Add(-blog.TrendingWindow), blog.SectionSize).
			WillReturnRows(mock.NewRows([]string{"blogid"}))

		items, err := repository.TopN(context.Background(), blog.SectionTrending, blog.CategoryManga, now, blog.SectionSize)
		require.NoError(t, err)

		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("newest_has_no_window", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectQuery(`WHERE TRUE ORDER BY b\.releasedate DESC, b\.blogid DESC LIMIT \$1$`).
			WithArgs(blog.SectionSize).
			WillReturnRows(mock.NewRows([]string{"blogid"}))

		_, err := repository.TopN(context.Background(), blog.SectionNewest, "", now, blog.SectionSize)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

/*
TestRepository_List covers the filter arguments and the plain COUNT issued
when a page lies past the end.
*/
func TestRepository_List(t *testing.T) {
	t.Run("past_end_counts", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectQuery(`(?s)COUNT\(\*\) OVER\(\) AS totalcount.* WHERE TRUE AND b\.category = \$1 ORDER BY b\.createdat DESC, b\.blogid DESC LIMIT \$2 OFFSET \$3$`).
			WithArgs("Manga", 5, 10).
			WillReturnRows(mock.NewRows([]string{"blogid"}))
		mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM core\.blog b WHERE TRUE AND b\.category = \$1$`).
			WithArgs("Manga").
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(12))

		items, total, err := repository.List(context.Background(), blog.ListQuery{
			Filter: blog.Filter{Category: blog.CategoryManga},
			Sort:   blog.SortNew,
			Page:   pagination.Params{Page: 3, Limit: 5},
		})
		require.NoError(t, err)

		assert.Empty(t, items)
		assert.Equal(t, 12, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first_page_empty_skips_count", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectQuery(`COUNT\(\*\) OVER\(\)`).
			WithArgs(5, 0).
			WillReturnRows(mock.NewRows([]string{"blogid"}))

		_, total, err := repository.List(context.Background(), blog.ListQuery{
			Sort: blog.SortNew,
			Page: pagination.Params{Page: 1, Limit: 5},
		})
		require.NoError(t, err)

		assert.Zero(t, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("genres_and_escaped_text", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectQuery(`WHERE TRUE AND b\.genres && \$1::text\[\] AND \(b\.title ILIKE \$2 OR b\.content ILIKE \$2 OR EXISTS`).
			WithArgs([]string{"Action", "Drama"}, `%50\%\_off%`, 5, 0).
			WillReturnRows(mock.NewRows([]string{"blogid"}))

		_, _, err := repository.List(context.Background(), blog.ListQuery{
			Filter: blog.Filter{Genres: []blog.Genre{"Action", "Drama"}, Query: "50%_off"},
			Sort:   blog.SortNew,
			Page:   pagination.Params{Page: 1, Limit: 5},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

/*
TestRepository_Update writes only the patched columns and refreshes the
counters from the row.
*/
func TestRepository_Update(t *testing.T) {
	const returning = ` RETURNING updatedat, episodes, chapters, views, overallrating, totalratings$`
	columns := []string{"updatedat", "episodes", "chapters", "views", "overallrating", "totalratings"}
	updatedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("title_only_leaves_counters", func(t *testing.T) {
		repository, mock := newMockRepository(t)
		title := "Renamed"
		item := &blog.Blog{BlogID: "b-1", Title: title, Episodes: 12, Chapters: 30}

		mock.ExpectQuery(`^UPDATE core\.blog SET title = \$2, updatedat = NOW\(\) WHERE blogid = \$1`+returning).
			WithArgs("b-1", title).
			WillReturnRows(mock.NewRows(columns).AddRow(updatedAt, 13, 31, int64(900), 4.5, 2))

		err := repository.Update(context.Background(), item, blog.BlogPatch{Title: &title})
		require.NoError(t, err)

		assert.Equal(t, 13, item.Episodes)
		assert.Equal(t, 31, item.Chapters)
		assert.Equal(t, int64(900), item.Views)
		assert.Equal(t, updatedAt, item.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit_counter", func(t *testing.T) {
		repository, mock := newMockRepository(t)
		episodes := 24
		item := &blog.Blog{BlogID: "b-1", Episodes: episodes}

		mock.ExpectQuery(`^UPDATE core\.blog SET episodes = \$2, updatedat = NOW\(\) WHERE blogid = \$1`+returning).
			WithArgs("b-1", episodes).
			WillReturnRows(mock.NewRows(columns).AddRow(updatedAt, 24, 0, int64(0), 0.0, 0))

		require.NoError(t, repository.Update(context.Background(), item, blog.BlogPatch{Episodes: &episodes}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repository, mock := newMockRepository(t)

		mock.ExpectQuery(`^UPDATE core\.blog SET updatedat = NOW\(\)`).
			WithArgs("gone").
			WillReturnRows(mock.NewRows(columns))

		err := repository.Update(context.Background(), &blog.Blog{BlogID: "gone"}, blog.BlogPatch{})
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}
