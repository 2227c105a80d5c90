package schema

// CoreCommentTable represents the 'core.comment' table
type CoreCommentTable struct {
	Table     string
	ID        string
	BlogID    string
	UserID    string
	Content   string
	CreatedAt string
}

// CoreComment is the schema definition for core.comment
var CoreComment = CoreCommentTable{
	Table:     "core.comment",
	ID:        "id",
	BlogID:    "blogid",
	UserID:    "userid",
	Content:   "content",
	CreatedAt: "createdat",
}

func (t CoreCommentTable) Columns() []string {
	return []string{t.ID, t.BlogID, t.UserID, t.Content, t.CreatedAt}
}
