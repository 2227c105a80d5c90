// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog provides the PostgreSQL implementation of the catalogue store.

It relies on a few Postgres features:
  - Window Functions: COUNT(*) OVER() returns the filter total with the page.
  - Array Operators: '&&' matches genre intersection on a GIN-indexed text[].
  - Row Locks: SELECT ... FOR UPDATE serializes rating recomputation per entry.
  - Foreign Keys: ratings and comments cascade when an entry is deleted.
*/
package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/database/schema"
	"github.com/taibuivan/weebtsuki/internal/platform/dberr"
	"github.com/taibuivan/weebtsuki/pkg/slice"
)

const resourceBlog = "Blog"

// # PostgreSQL Repository

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(context context.Context) (pgx.Tx, error)
	Exec(context context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(context context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
}

// blogRepository implements [BlogRepository] using pgx.
type blogRepository struct {
	pool DB
}

// NewBlogRepository constructs a PostgreSQL backed blog store.
func NewBlogRepository(pool DB) BlogRepository {
	return &blogRepository{pool: pool}
}

// blogProjection renders the SELECT shared by every read, aliased "b" for
// the entry and "a" for the author. extra is appended to the column list.
func blogProjection(extra string) string {
	return fmt.Sprintf(`
	SELECT
		b.%s::text, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		b.%s, b.%s, b.%s, b.%s, b.%s,
		a.%s::text, a.%s%s
	FROM %s b
	LEFT JOIN %s a ON a.%s = b.%s
`,
		schema.CoreBlog.BlogID,
		schema.CoreBlog.Slug,
		schema.CoreBlog.Title,
		schema.CoreBlog.Content,
		schema.CoreBlog.ImageURL,
		schema.CoreBlog.Category,
		schema.CoreBlog.Genres,
		schema.CoreBlog.Status,
		schema.CoreBlog.AdminRating,
		schema.CoreBlog.OverallRating,
		schema.CoreBlog.TotalRatings,
		schema.CoreBlog.Episodes,
		schema.CoreBlog.Chapters,
		schema.CoreBlog.AlternativeNames,
		schema.CoreBlog.ReadingReview,
		schema.CoreBlog.IsPinned,
		schema.CoreBlog.ShowUserRatings,
		schema.CoreBlog.Views,
		schema.CoreBlog.ReleaseDate,
		schema.CoreBlog.CreatedAt,
		schema.CoreBlog.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.Username,
		extra,
		schema.CoreBlog.Table,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.CoreBlog.AuthorID,
	)
}

var blogSelect = blogProjection("")

// scanBlog reads one [blogSelect] row. extra receives any trailing columns.
func scanBlog(row pgx.Row, extra ...any) (*Blog, error) {
	blog := &Blog{}
	var genres []string
	var authorID, authorName *string

	targets := []any{
		&blog.BlogID, &blog.Slug, &blog.Title, &blog.Content, &blog.ImageURL, &blog.Category, &genres, &blog.Status,
		&blog.AdminRating, &blog.OverallRating, &blog.TotalRatings, &blog.Episodes, &blog.Chapters, &blog.AlternativeNames, &blog.ReadingReview, &blog.IsPinned,
		&blog.ShowUserRatings, &blog.Views, &blog.ReleaseDate, &blog.CreatedAt, &blog.UpdatedAt,
		&authorID, &authorName,
	}

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	blog.Genres = slice.Map(genres, func(genre string) Genre { return Genre(genre) })
	if blog.Genres == nil {
		blog.Genres = []Genre{}
	}
	if blog.AlternativeNames == nil {
		blog.AlternativeNames = []string{}
	}
	if authorID != nil {
		blog.Author = &AuthorRef{ID: *authorID}
		if authorName != nil {
			blog.Author.Username = *authorName
		}
	}

	return blog, nil
}

// filterClause appends the WHERE constraints of filter to builder and
// returns the grown argument list.
func filterClause(builder *strings.Builder, filter Filter, args []any) []any {
	builder.WriteString(" WHERE TRUE")

	if category, ok := filter.CategoryConstraint(); ok {
		args = append(args, string(category))
		builder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CoreBlog.Category, len(args)))
	}

	if status, ok := filter.StatusConstraint(); ok {
		args = append(args, string(status))
		builder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CoreBlog.Status, len(args)))
	}

	// Genre intersection
	if len(filter.Genres) > 0 {
		args = append(args, slice.Map(filter.Genres, func(genre Genre) string { return string(genre) }))
		builder.WriteString(fmt.Sprintf(" AND b.%s && $%d::text[]", schema.CoreBlog.Genres, len(args)))
	}

	// Free text over title, content and alternative names
	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		builder.WriteString(fmt.Sprintf(
			" AND (b.%[1]s ILIKE $%[4]d OR b.%[2]s ILIKE $%[4]d OR EXISTS (SELECT 1 FROM unnest(b.%[3]s) AS alt(name) WHERE alt.name ILIKE $%[4]d))",
			schema.CoreBlog.Title, schema.CoreBlog.Content, schema.CoreBlog.AlternativeNames, len(args),
		))
	}

	return args
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

// # Reads

/*
List returns a filtered, sorted page of entries and the total count.

Description: The filter total rides along each row through COUNT(*) OVER().
When the requested page lies past the end no row carries it, so a plain
COUNT is issued instead.

Parameters:
  - context: context.Context
  - query: ListQuery

Returns:
  - []*Blog: Page of entries
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *blogRepository) List(context context.Context, query ListQuery) ([]*Blog, int, error) {

	// Projection with window total
	var queryBuilder strings.Builder
	queryBuilder.WriteString(blogProjection(", COUNT(*) OVER() AS totalcount"))

	args := filterClause(&queryBuilder, query.Filter, nil)

	// Ordering and window
	queryBuilder.WriteString(" ORDER BY " + query.Sort.OrderBy())
	args = append(args, query.Page.Limit, query.Page.Offset())
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceBlog, "list blogs")
	}
	defer rows.Close()

	blogs := []*Blog{}
	var totalCount int
	for rows.Next() {
		blog, err := scanBlog(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceBlog, "scan blog")
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceBlog, "iterate blogs")
	}

	// Past-the-end page
	if len(blogs) == 0 && query.Page.Offset() > 0 {
		totalCount, err = repository.count(context, query.Filter)
		if err != nil {
			return nil, 0, err
		}
	}

	return blogs, totalCount, nil
}

// count returns the number of entries matching filter.
func (repository *blogRepository) count(context context.Context, filter Filter) (int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("SELECT COUNT(*) FROM %s b", schema.CoreBlog.Table))
	args := filterClause(&queryBuilder, filter, nil)

	var total int
	if err := repository.pool.QueryRow(context, queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceBlog, "count blogs")
	}
	return total, nil
}

/*
FindByID retrieves an entry by blogId with its per-user ratings.

Parameters:
  - context: context.Context
  - blogID: string (UUID)

Returns:
  - *Blog: Hydrated entry
  - error: apperr.NotFound if missing
*/
func (repository *blogRepository) FindByID(context context.Context, blogID string) (*Blog, error) {
	return repository.findOne(context, schema.CoreBlog.BlogID, blogID)
}

// FindBySlug retrieves an entry by slug with its per-user ratings.
func (repository *blogRepository) FindBySlug(context context.Context, slug string) (*Blog, error) {
	return repository.findOne(context, schema.CoreBlog.Slug, slug)
}

func (repository *blogRepository) findOne(context context.Context, column, value string) (*Blog, error) {
	query := blogSelect + fmt.Sprintf(" WHERE b.%s = $1", column)

	blog, err := scanBlog(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBlog, "find blog")
	}

	ratings, err := repository.ratings(context, blog.BlogID)
	if err != nil {
		return nil, err
	}
	blog.UserRatings = ratings

	return blog, nil
}

// ratings loads the per-user ratings of an entry in submission order.
func (repository *blogRepository) ratings(context context.Context, blogID string) ([]UserRating, error) {
	query := fmt.Sprintf(`
		SELECT %s::text, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s, %s
	`,
		schema.CoreBlogRating.UserID, schema.CoreBlogRating.Rating, schema.CoreBlogRating.CreatedAt,
		schema.CoreBlogRating.Table,
		schema.CoreBlogRating.BlogID,
		schema.CoreBlogRating.CreatedAt, schema.CoreBlogRating.UserID,
	)

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBlog, "list ratings")
	}

	ratings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (UserRating, error) {
		var rating UserRating
		err := row.Scan(&rating.UserID, &rating.Rating, &rating.CreatedAt)
		return rating, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, resourceBlog, "scan ratings")
	}

	return ratings, nil
}

// ResolveID maps a blogId or slug to the blogId.
func (repository *blogRepository) ResolveID(context context.Context, identifier string) (string, error) {
	query := fmt.Sprintf(`SELECT %s::text FROM %s WHERE %s::text = $1 OR %s = $1`,
		schema.CoreBlog.BlogID, schema.CoreBlog.Table, schema.CoreBlog.BlogID, schema.CoreBlog.Slug)

	var blogID string
	if err := repository.pool.QueryRow(context, query, identifier).Scan(&blogID); err != nil {
		return "", dberr.Wrap(err, resourceBlog, "resolve blog")
	}
	return blogID, nil
}

/*
TopN returns the leading entries of one landing page section.

Parameters:
  - context: context.Context
  - section: Section (ordering and optional window)
  - category: Category (empty for all)
  - now: time.Time (window reference)
  - limit: int

Returns:
  - []*Blog: Ranked entries, authors reduced to usernames
  - error: Database execution errors
*/
func (repository *blogRepository) TopN(context context.Context, section Section, category Category, now time.Time, limit int) ([]*Blog, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(blogSelect)

	args := filterClause(&queryBuilder, Filter{Category: category}, nil)

	// Trending window, inclusive lower bound
	if start, windowed := section.WindowStart(now); windowed {
		args = append(args, start)
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s >= $%d", schema.CoreBlog.UpdatedAt, len(args)))
	}

	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d", section.OrderBy(), len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBlog, "rank "+string(section))
	}
	defer rows.Close()

	blogs := []*Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceBlog, "scan ranked blog")
		}
		blogs = append(blogs, summarize(blog))
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceBlog, "iterate ranked blogs")
	}

	return blogs, nil
}

// # Writes

/*
Create inserts a new entry.

Parameters:
  - context: context.Context
  - blog: *Blog (blogId, slug and defaults already assigned)

Returns:
  - error: apperr.Conflict on duplicate blogId or slug
*/
func (repository *blogRepository) Create(context context.Context, blog *Blog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING %s, %s
	`,
		schema.CoreBlog.Table,
		schema.CoreBlog.BlogID, schema.CoreBlog.Slug, schema.CoreBlog.Title, schema.CoreBlog.Content,
		schema.CoreBlog.ImageURL, schema.CoreBlog.AuthorID, schema.CoreBlog.Category, schema.CoreBlog.Genres,
		schema.CoreBlog.Status, schema.CoreBlog.AdminRating, schema.CoreBlog.Episodes, schema.CoreBlog.Chapters,
		schema.CoreBlog.AlternativeNames, schema.CoreBlog.ReadingReview, schema.CoreBlog.IsPinned,
		schema.CoreBlog.ShowUserRatings, schema.CoreBlog.ReleaseDate,
		schema.CoreBlog.CreatedAt, schema.CoreBlog.UpdatedAt,
	)

	var authorID *string
	if blog.Author != nil && blog.Author.ID != "" {
		authorID = &blog.Author.ID
	}

	err := repository.pool.QueryRow(context, query,
		blog.BlogID, blog.Slug, blog.Title, blog.Content, blog.ImageURL, authorID,
		string(blog.Category), genreStrings(blog.Genres), string(blog.Status), blog.AdminRating,
		blog.Episodes, blog.Chapters, nonNil(blog.AlternativeNames), blog.ReadingReview,
		blog.IsPinned, blog.ShowUserRatings, blog.ReleaseDate,
	).Scan(&blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceBlog, "create blog")
	}

	return nil
}

/*
Update writes the fields patch sets and refreshes the server-owned columns.

Description: Only columns named by the patch appear in the SET list, so a
counter adjusted or a rating submitted since blog was read is not rolled
back. Values are taken from blog, which already carries the normalized
patch. updatedAt is set by the database clock.

Parameters:
  - context: context.Context
  - blog: *Blog (patch applied, refreshed in place)
  - patch: BlogPatch

Returns:
  - error: apperr.NotFound if missing
*/
func (repository *blogRepository) Update(context context.Context, blog *Blog, patch BlogPatch) error {
	args := []any{blog.BlogID}
	var assignments []string
	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set(schema.CoreBlog.Title, blog.Title)
	}
	if patch.Content != nil {
		set(schema.CoreBlog.Content, blog.Content)
	}
	if patch.ImageURL != nil {
		set(schema.CoreBlog.ImageURL, blog.ImageURL)
	}
	if patch.Category != nil {
		set(schema.CoreBlog.Category, string(blog.Category))
	}
	if patch.Genres != nil {
		set(schema.CoreBlog.Genres, genreStrings(blog.Genres))
	}
	if patch.Status != nil {
		set(schema.CoreBlog.Status, string(blog.Status))
	}
	if patch.AdminRating != nil {
		set(schema.CoreBlog.AdminRating, blog.AdminRating)
	}
	if patch.Episodes != nil {
		set(schema.CoreBlog.Episodes, blog.Episodes)
	}
	if patch.Chapters != nil {
		set(schema.CoreBlog.Chapters, blog.Chapters)
	}
	if patch.AlternativeNames != nil {
		set(schema.CoreBlog.AlternativeNames, nonNil(blog.AlternativeNames))
	}
	if patch.ReadingReview != nil {
		set(schema.CoreBlog.ReadingReview, blog.ReadingReview)
	}
	if patch.IsPinned != nil {
		set(schema.CoreBlog.IsPinned, blog.IsPinned)
	}
	if patch.ShowUserRatings != nil {
		set(schema.CoreBlog.ShowUserRatings, blog.ShowUserRatings)
	}
	if patch.ReleaseDate != nil {
		set(schema.CoreBlog.ReleaseDate, blog.ReleaseDate)
	}
	assignments = append(assignments, schema.CoreBlog.UpdatedAt+" = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1 RETURNING %s, %s, %s, %s, %s, %s",
		schema.CoreBlog.Table, strings.Join(assignments, ", "), schema.CoreBlog.BlogID,
		schema.CoreBlog.UpdatedAt, schema.CoreBlog.Episodes, schema.CoreBlog.Chapters,
		schema.CoreBlog.Views, schema.CoreBlog.OverallRating, schema.CoreBlog.TotalRatings,
	)

	err := repository.pool.QueryRow(context, query, args...).Scan(
		&blog.UpdatedAt, &blog.Episodes, &blog.Chapters,
		&blog.Views, &blog.OverallRating, &blog.TotalRatings,
	)
	if err != nil {
		return dberr.Wrap(err, resourceBlog, "update blog")
	}

	return nil
}

// Delete removes an entry. Ratings and comments go with it through
// ON DELETE CASCADE in the same statement.
func (repository *blogRepository) Delete(context context.Context, blogID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreBlog.Table, schema.CoreBlog.BlogID)

	tag, err := repository.pool.Exec(context, query, blogID)
	if err != nil {
		return dberr.Wrap(err, resourceBlog, "delete blog")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceBlog)
	}

	return nil
}

/*
AdjustCounter changes the episodes or chapters counter in one statement.

Parameters:
  - context: context.Context
  - blogID: string
  - target: CounterTarget
  - action: CounterAction
  - value: int (amount for increment/decrement, new value for set)

Returns:
  - CounterState: Both counters after the write
  - error: apperr.NotFound if missing
*/
func (repository *blogRepository) AdjustCounter(context context.Context, blogID string, target CounterTarget, action CounterAction, value int) (CounterState, error) {

	// Column whitelist
	column := schema.CoreBlog.Episodes
	if target == TargetChapters {
		column = schema.CoreBlog.Chapters
	}

	var expression string
	switch action {
	case ActionIncrement:
		expression = fmt.Sprintf("%s + $2", column)
	case ActionDecrement:
		expression = fmt.Sprintf("GREATEST(%s - $2, 0)", column)
	default:
		expression = "$2"
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreBlog.Table, column, expression, schema.CoreBlog.UpdatedAt,
		schema.CoreBlog.BlogID,
		schema.CoreBlog.Episodes, schema.CoreBlog.Chapters,
	)

	var state CounterState
	if err := repository.pool.QueryRow(context, query, blogID, value).Scan(&state.Episodes, &state.Chapters); err != nil {
		return CounterState{}, dberr.Wrap(err, resourceBlog, "adjust counter")
	}

	return state, nil
}

/*
UpsertRating stores a reader's rating and recomputes the aggregates.

Description: Runs in one transaction. The entry row is locked first, so two
readers rating the same entry recompute one after the other and each sees
the other's row. The aggregates are recomputed from the rating rows rather
than adjusted incrementally.

Parameters:
  - context: context.Context
  - blogID: string
  - userID: string
  - rating: float64 (already validated)

Returns:
  - RatingSummary: Aggregates after the write
  - error: apperr.NotFound if the entry is missing
*/
func (repository *blogRepository) UpsertRating(context context.Context, blogID, userID string, rating float64) (RatingSummary, error) {
	var summary RatingSummary

	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {

		// ── 1. Lock the entry ─────────────────────────────────────────────
		lockQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`,
			schema.CoreBlog.Table, schema.CoreBlog.BlogID)
		var exists int
		if err := tx.QueryRow(context, lockQuery, blogID).Scan(&exists); err != nil {
			return err
		}

		// ── 2. Upsert the reader's row ────────────────────────────────────
		upsertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
			ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
		`,
			schema.CoreBlogRating.Table,
			schema.CoreBlogRating.BlogID, schema.CoreBlogRating.UserID, schema.CoreBlogRating.Rating,
			schema.CoreBlogRating.BlogID, schema.CoreBlogRating.UserID,
			schema.CoreBlogRating.Rating, schema.CoreBlogRating.Rating, schema.CoreBlogRating.UpdatedAt,
		)
		if _, err := tx.Exec(context, upsertQuery, blogID, userID, rating); err != nil {
			return err
		}

		// ── 3. Recompute the aggregates ───────────────────────────────────
		recomputeQuery := fmt.Sprintf(`
			UPDATE %[1]s b SET
				%[2]s = agg.mean, %[3]s = agg.total, %[4]s = NOW()
			FROM (
				SELECT COALESCE(AVG(%[5]s), 0) AS mean, COUNT(*) AS total
				FROM %[6]s WHERE %[7]s = $1
			) agg
			WHERE b.%[8]s = $1
			RETURNING b.%[2]s, b.%[3]s
		`,
			schema.CoreBlog.Table,
			schema.CoreBlog.OverallRating, schema.CoreBlog.TotalRatings, schema.CoreBlog.UpdatedAt,
			schema.CoreBlogRating.Rating,
			schema.CoreBlogRating.Table, schema.CoreBlogRating.BlogID,
			schema.CoreBlog.BlogID,
		)
		return tx.QueryRow(context, recomputeQuery, blogID).Scan(&summary.OverallRating, &summary.TotalRatings)
	})
	if err != nil {
		return RatingSummary{}, dberr.Wrap(err, resourceBlog, "upsert rating")
	}

	return summary, nil
}

// IncrementViews adds one view. updatedAt is left alone so reads never
// reorder the recently updated section.
func (repository *blogRepository) IncrementViews(context context.Context, blogID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.CoreBlog.Table, schema.CoreBlog.Views, schema.CoreBlog.Views, schema.CoreBlog.BlogID)

	tag, err := repository.pool.Exec(context, query, blogID)
	if err != nil {
		return dberr.Wrap(err, resourceBlog, "increment views")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceBlog)
	}
	return nil
}

/*
ReconcileRatings repairs aggregates that drifted from the rating rows.

Returns:
  - int: Number of entries corrected
  - error: Database execution errors
*/
func (repository *blogRepository) ReconcileRatings(context context.Context) (int, error) {
	query := fmt.Sprintf(`
		WITH agg AS (
			SELECT b.%[1]s AS id,
				COALESCE(AVG(r.%[2]s), 0) AS mean,
				COUNT(r.%[2]s) AS total
			FROM %[3]s b
			LEFT JOIN %[4]s r ON r.%[5]s = b.%[1]s
			GROUP BY b.%[1]s
		)
		UPDATE %[3]s b SET %[6]s = agg.mean, %[7]s = agg.total
		FROM agg
		WHERE b.%[1]s = agg.id
			AND (b.%[7]s <> agg.total OR ABS(b.%[6]s - agg.mean) > 1e-9)
	`,
		schema.CoreBlog.BlogID,
		schema.CoreBlogRating.Rating,
		schema.CoreBlog.Table,
		schema.CoreBlogRating.Table,
		schema.CoreBlogRating.BlogID,
		schema.CoreBlog.OverallRating,
		schema.CoreBlog.TotalRatings,
	)

	tag, err := repository.pool.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, resourceBlog, "reconcile ratings")
	}
	return int(tag.RowsAffected()), nil
}

// # Helpers

func genreStrings(genres []Genre) []string {
	return nonNil(slice.Map(genres, func(genre Genre) string { return string(genre) }))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
