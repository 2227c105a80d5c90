// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/sec"
	"github.com/taibuivan/weebtsuki/internal/platform/validate"
	"github.com/taibuivan/weebtsuki/pkg/uuid"
)

// BlogResolver maps an entry identifier (blogId or slug) to its blogId.
type BlogResolver interface {
	ResolveID(context context.Context, identifier string) (string, error)
}

// # Service Layer

// Service orchestrates the business rules for comments.
type Service struct {
	repository Repository
	blogs      BlogResolver
	logger     *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repository Repository, blogs BlogResolver, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		blogs:      blogs,
		logger:     logger,
	}
}

/*
ListByBlog returns an entry's comments, newest first.

Parameters:
  - context: context.Context
  - identifier: string (blogId or slug)

Returns:
  - []*Comment: Possibly empty list
  - error: ErrNotFound if the entry does not exist
*/
func (service *Service) ListByBlog(context context.Context, identifier string) ([]*Comment, error) {
	blogID, err := service.blogs.ResolveID(context, identifier)
	if err != nil {
		return nil, err
	}
	return service.repository.ListByBlog(context, blogID)
}

/*
Create posts a comment as userID.

Description: Content is trimmed and must be non-empty and at most
[MaxContentLength] characters. The entry must exist.

Returns:
  - *Comment: Stored comment with its author username
  - error: apperr.ValidationError or apperr.NotFound
*/
func (service *Service) Create(context context.Context, identifier, userID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.Custom(FieldContent, utf8.RuneCountInString(content) > MaxContentLength, "Must be at most 2000 characters")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	blogID, err := service.blogs.ResolveID(context, identifier)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:      uuid.New(),
		BlogID:  blogID,
		User:    Author{ID: userID},
		Content: content,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("blog_id", blogID),
		slog.String("user_id", userID),
	)

	return comment, nil
}

/*
Delete removes a comment on behalf of caller.

Description: Allowed for the comment's author and for administrators.

Returns:
  - error: apperr.NotFound, apperr.Forbidden or storage errors
*/
func (service *Service) Delete(context context.Context, commentID string, caller *sec.AuthClaims) error {
	if !uuid.IsValid(commentID) {
		return apperr.NotFound(resourceComment)
	}

	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return err
	}

	if comment.User.ID != caller.UserID && !caller.IsAdmin() {
		return apperr.Forbidden("Not authorized to delete this comment")
	}

	if err := service.repository.Delete(context, commentID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("deleted_by", caller.UserID),
	)

	return nil
}
