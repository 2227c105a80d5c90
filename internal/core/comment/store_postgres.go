// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/database/schema"
	"github.com/taibuivan/weebtsuki/internal/platform/dberr"
)

const resourceComment = "Comment"

// # PostgreSQL Repository

// commentRepository implements [Repository] using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

var commentSelect = fmt.Sprintf(`
	SELECT c.%s::text, c.%s::text, c.%s::text, a.%s, c.%s, c.%s
	FROM %s c
	JOIN %s a ON a.%s = c.%s
`,
	schema.CoreComment.ID,
	schema.CoreComment.BlogID,
	schema.CoreComment.UserID,
	schema.UserAccount.Username,
	schema.CoreComment.Content,
	schema.CoreComment.CreatedAt,
	schema.CoreComment.Table,
	schema.UserAccount.Table,
	schema.UserAccount.ID,
	schema.CoreComment.UserID,
)

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.BlogID, &comment.User.ID, &comment.User.Username, &comment.Content, &comment.CreatedAt)
	return comment, err
}

// ListByBlog implements [Repository].
func (repository *commentRepository) ListByBlog(context context.Context, blogID string) ([]*Comment, error) {
	query := commentSelect + fmt.Sprintf(" WHERE c.%s = $1 ORDER BY c.%s DESC, c.%s DESC",
		schema.CoreComment.BlogID,
		schema.CoreComment.CreatedAt,
		schema.CoreComment.ID,
	)

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment, "list comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceComment, "scan comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceComment, "iterate comments")
	}

	return comments, nil
}

// FindByID implements [Repository].
func (repository *commentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := commentSelect + fmt.Sprintf(" WHERE c.%s = $1", schema.CoreComment.ID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment, "find comment")
	}
	return comment, nil
}

/*
Create inserts the comment and joins the author's username in the same
statement.
*/
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
			VALUES ($1, $2, $3, $4)
			RETURNING %[4]s, %[6]s
		)
		SELECT a.%[7]s, inserted.%[6]s
		FROM inserted
		JOIN %[8]s a ON a.%[9]s = inserted.%[4]s
	`,
		schema.CoreComment.Table,
		schema.CoreComment.ID,
		schema.CoreComment.BlogID,
		schema.CoreComment.UserID,
		schema.CoreComment.Content,
		schema.CoreComment.CreatedAt,
		schema.UserAccount.Username,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.BlogID, comment.User.ID, comment.Content,
	).Scan(&comment.User.Username, &comment.CreatedAt)

	return dberr.Wrap(err, resourceComment, "create comment")
}

// Delete implements [Repository].
func (repository *commentRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreComment.Table, schema.CoreComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceComment, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceComment)
	}
	return nil
}
