package schema

// CoreBlogRatingTable represents the 'core.blograting' table
type CoreBlogRatingTable struct {
	Table     string
	BlogID    string
	UserID    string
	Rating    string
	CreatedAt string
	UpdatedAt string
}

// CoreBlogRating is the schema definition for core.blograting
var CoreBlogRating = CoreBlogRatingTable{
	Table:     "core.blograting",
	BlogID:    "blogid",
	UserID:    "userid",
	Rating:    "rating",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
