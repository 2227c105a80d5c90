// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/weebtsuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/weebtsuki/internal/platform/request"
	"github.com/taibuivan/weebtsuki/internal/platform/respond"
	"github.com/taibuivan/weebtsuki/internal/platform/sec"
	"github.com/taibuivan/weebtsuki/internal/platform/validate"
	"github.com/taibuivan/weebtsuki/pkg/pagination"
	"github.com/taibuivan/weebtsuki/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for the catalogue.
type Handler struct {
	service *Service
	views   *ViewCounter
}

// NewHandler constructs a blog [Handler].
func NewHandler(service *Service, views *ViewCounter) *Handler {
	return &Handler{service: service, views: views}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): list, landing page sections and detail.
//   - Rating (Authenticated): any signed-in reader.
//   - Management (Restricted): requires [sec.RoleAdmin].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listBlogs)
	router.Get("/home/sections", handler.homeSections)
	router.Get("/{identifier}", handler.getBlog)

	// ## Reader Endpoints
	router.With(middleware.RequireAuth).Post("/{identifier}/rate", handler.rateBlog)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createBlog)
		admin.Put("/{identifier}", handler.updateBlog)
		admin.Patch("/{identifier}", handler.updateBlog)
		admin.Delete("/{identifier}", handler.deleteBlog)
		admin.Patch("/{identifier}/episodes-chapters", handler.adjustCounter)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/blogs.

Description: Filtered, sorted and paginated listing.

Request:
  - category: string (Anime, Manhwa, Manhua, Manga, All)
  - genres: string (comma-separated, matches any)
  - status: string (Ongoing, Hiatus, Cancelled, Completed, All)
  - q: string (title, content or alternative name)
  - sortBy: string (new, rating, popular, updated, hot)
  - page: int (>= 1)
  - limit: int (>= 1, default 10, capped at 100)

Response:
  - 200: {blogs, pagination}
  - 400: ErrValidation: Invalid parameter
*/
func (handler *Handler) listBlogs(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request)
	if err != nil {
		field := FieldLimit
		if errors.Is(err, pagination.ErrInvalidPage) {
			field = FieldPage
		}
		respond.Error(writer, request, validate.RequiredError(field, err.Error()))
		return
	}

	values := request.URL.Query()
	query := ListQuery{
		Filter: ParseFilter(values),
		Sort:   SortKey(values.Get("sortBy")),
		Page:   page,
	}

	result, err := handler.service.ListBlogs(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/blogs/home/sections.

Request:
  - category: string (optional)

Response:
  - 200: Sections
  - 400: ErrValidation: Unknown category
*/
func (handler *Handler) homeSections(writer http.ResponseWriter, request *http.Request) {
	category := Category(request.URL.Query().Get("category"))

	sections, err := handler.service.HomeSections(request.Context(), category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sections)
}

/*
GET /api/v1/blogs/{identifier}.

Description: Returns one entry and records a view in the background.
Per-user ratings are hidden from non-admins when the entry disables them.

Response:
  - 200: Blog
  - 404: ErrNotFound
*/
func (handler *Handler) getBlog(writer http.ResponseWriter, request *http.Request) {
	blog, err := handler.service.GetBlog(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.views.Record(request.Context(), blog.BlogID)

	claims := requestutil.Claims(request)
	if !blog.ShowUserRatings && (claims == nil || !claims.IsAdmin()) {
		blog.UserRatings = nil
	}

	respond.OK(writer, blog)
}

// # Request Payloads

// createBlogRequest defines the inbound JSON schema for entry creation.
type createBlogRequest struct {
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	ImageURL         string     `json:"imageUrl"`
	Category         Category   `json:"category"`
	Genres           []Genre    `json:"genres"`
	Status           Status     `json:"status"`
	AdminRating      float64    `json:"adminRating"`
	Episodes         int        `json:"episodes"`
	Chapters         int        `json:"chapters"`
	AlternativeNames []string   `json:"alternativeNames"`
	ReadingReview    string     `json:"readingReview"`
	IsPinned         bool       `json:"isPinned"`
	ShowUserRatings  *bool      `json:"showUserRatings"`
	ReleaseDate      *time.Time `json:"releaseDate"`
}

// updateBlogRequest carries a partial update. Absent fields stay unchanged.
type updateBlogRequest struct {
	Title            *string    `json:"title"`
	Content          *string    `json:"content"`
	ImageURL         *string    `json:"imageUrl"`
	Category         *Category  `json:"category"`
	Genres           *[]Genre   `json:"genres"`
	Status           *Status    `json:"status"`
	AdminRating      *float64   `json:"adminRating"`
	Episodes         *int       `json:"episodes"`
	Chapters         *int       `json:"chapters"`
	AlternativeNames *[]string  `json:"alternativeNames"`
	ReadingReview    *string    `json:"readingReview"`
	IsPinned         *bool      `json:"isPinned"`
	ShowUserRatings  *bool      `json:"showUserRatings"`
	ReleaseDate      *time.Time `json:"releaseDate"`
}

type rateRequest struct {
	Rating *float64 `json:"rating"`
}

type adjustCounterRequest struct {
	Target CounterTarget `json:"target"`
	Action CounterAction `json:"action"`
	Value  *int          `json:"value"`
}

// # Reader Endpoints

/*
POST /api/v1/blogs/{identifier}/rate.

Request (Body):
  - rating: number in [0, 5]

Response:
  - 200: {overallRating, totalRatings}
  - 400: ErrValidation
  - 401: ErrUnauthorized
  - 404: ErrNotFound
*/
func (handler *Handler) rateBlog(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Rating == nil {
		respond.Error(writer, request, validate.RequiredError(FieldRating, "This field is required"))
		return
	}

	summary, err := handler.service.SubmitRating(request.Context(), requestutil.ID(request, "identifier"), userID, *input.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

// # Mutation Endpoints

/*
POST /api/v1/blogs.

Response:
  - 201: Blog
  - 400: ErrValidation
  - 401: ErrUnauthorized
  - 403: ErrForbidden
*/
func (handler *Handler) createBlog(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createBlogRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog := &Blog{
		Title:            input.Title,
		Content:          input.Content,
		ImageURL:         input.ImageURL,
		Category:         input.Category,
		Genres:           input.Genres,
		Status:           input.Status,
		AdminRating:      input.AdminRating,
		Episodes:         input.Episodes,
		Chapters:         input.Chapters,
		AlternativeNames: input.AlternativeNames,
		ReadingReview:    input.ReadingReview,
		IsPinned:         input.IsPinned,
		ShowUserRatings:  pointer.Fallback(input.ShowUserRatings, true),
		ReleaseDate:      pointer.Val(input.ReleaseDate),
	}

	author := AuthorRef{ID: claims.UserID, Username: claims.Username}
	if err := handler.service.CreateBlog(request.Context(), author, blog); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, blog)
}

/*
PUT|PATCH /api/v1/blogs/{identifier}.

Response:
  - 200: Blog
  - 400: ErrValidation
  - 404: ErrNotFound
*/
func (handler *Handler) updateBlog(writer http.ResponseWriter, request *http.Request) {
	var input updateBlogRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := BlogPatch{
		Title:            input.Title,
		Content:          input.Content,
		ImageURL:         input.ImageURL,
		Category:         input.Category,
		Genres:           input.Genres,
		Status:           input.Status,
		AdminRating:      input.AdminRating,
		Episodes:         input.Episodes,
		Chapters:         input.Chapters,
		AlternativeNames: input.AlternativeNames,
		ReadingReview:    input.ReadingReview,
		IsPinned:         input.IsPinned,
		ShowUserRatings:  input.ShowUserRatings,
		ReleaseDate:      input.ReleaseDate,
	}

	blog, err := handler.service.UpdateBlog(request.Context(), requestutil.ID(request, "identifier"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, blog)
}

/*
DELETE /api/v1/blogs/{identifier}.

Description: Deletes the entry, its ratings and its comments.

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) deleteBlog(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBlog(request.Context(), requestutil.ID(request, "identifier")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PATCH /api/v1/blogs/{identifier}/episodes-chapters.

Request (Body):
  - target: episodes | chapters
  - action: increment | decrement | set
  - value: int (required for set)

Response:
  - 200: {episodes, chapters}
  - 400: ErrValidation
  - 404: ErrNotFound
*/
func (handler *Handler) adjustCounter(writer http.ResponseWriter, request *http.Request) {
	var input adjustCounterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.AdjustCounter(request.Context(), requestutil.ID(request, "identifier"), input.Target, input.Action, input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}
