// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/weebtsuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/weebtsuki/internal/platform/request"
	"github.com/taibuivan/weebtsuki/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// BlogRoutes serves the comments of one entry. Mount it under
// /blogs/{blogID}/comments.
func (handler *Handler) BlogRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)
	router.With(middleware.RequireAuth).Post("/", handler.createComment)

	return router
}

// Routes serves individual comments. Mount it under /comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).Delete("/{commentID}", handler.deleteComment)

	return router
}

/*
GET /api/v1/blogs/{blogID}/comments.

Response:
  - 200: []Comment (newest first)
  - 404: ErrNotFound
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListByBlog(request.Context(), requestutil.ID(request, "blogID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

type createCommentRequest struct {
	Content string `json:"content"`
}

/*
POST /api/v1/blogs/{blogID}/comments.

Request (Body):
  - content: string (1..2000 characters)

Response:
  - 201: Comment
  - 400: ErrValidation
  - 401: ErrUnauthorized
  - 404: ErrNotFound
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), requestutil.ID(request, "blogID"), userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{commentID}.

Response:
  - 204: No Content
  - 401: ErrUnauthorized
  - 403: ErrForbidden (not the author and not an admin)
  - 404: ErrNotFound
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "commentID"), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
