package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsVerified   string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "passwordhash",
	Role:         "role",
	IsVerified:   "isverified",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.PasswordHash, t.Role, t.IsVerified, t.CreatedAt, t.UpdatedAt}
}
