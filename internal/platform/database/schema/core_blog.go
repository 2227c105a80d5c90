package schema

// CoreBlogTable represents the 'core.blog' table
type CoreBlogTable struct {
	Table            string
	ID               string
	BlogID           string
	Slug             string
	Title            string
	Content          string
	ImageURL         string
	AuthorID         string
	Category         string
	Genres           string
	Status           string
	AdminRating      string
	OverallRating    string
	TotalRatings     string
	Episodes         string
	Chapters         string
	AlternativeNames string
	ReadingReview    string
	IsPinned         string
	ShowUserRatings  string
	Views            string
	ReleaseDate      string
	CreatedAt        string
	UpdatedAt        string
}

// CoreBlog is the schema definition for core.blog
var CoreBlog = CoreBlogTable{
	Table:            "core.blog",
	ID:               "id",
	BlogID:           "blogid",
	Slug:             "slug",
	Title:            "title",
	Content:          "content",
	ImageURL:         "imageurl",
	AuthorID:         "authorid",
	Category:         "category",
	Genres:           "genres",
	Status:           "status",
	AdminRating:      "adminrating",
	OverallRating:    "overallrating",
	TotalRatings:     "totalratings",
	Episodes:         "episodes",
	Chapters:         "chapters",
	AlternativeNames: "alternativenames",
	ReadingReview:    "readingreview",
	IsPinned:         "ispinned",
	ShowUserRatings:  "showuserratings",
	Views:            "views",
	ReleaseDate:      "releasedate",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns the externally visible columns in scan order.
// The surrogate ID is omitted.
func (t CoreBlogTable) Columns() []string {
	return []string{
		t.BlogID, t.Slug, t.Title, t.Content, t.ImageURL, t.AuthorID, t.Category,
		t.Genres, t.Status, t.AdminRating, t.OverallRating, t.TotalRatings,
		t.Episodes, t.Chapters, t.AlternativeNames, t.ReadingReview, t.IsPinned,
		t.ShowUserRatings, t.Views, t.ReleaseDate, t.CreatedAt, t.UpdatedAt,
	}
}
