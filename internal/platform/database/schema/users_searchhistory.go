package schema

// UserSearchHistoryTable represents the 'users.searchhistory' table
type UserSearchHistoryTable struct {
	Table      string
	ID         string
	AccountID  string
	Image      string
	Title      string
	SearchType string
	CreatedAt  string
}

// UserSearchHistory is the schema definition for users.searchhistory
var UserSearchHistory = UserSearchHistoryTable{
	Table:      "users.searchhistory",
	ID:         "id",
	AccountID:  "accountid",
	Image:      "image",
	Title:      "title",
	SearchType: "searchtype",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t UserSearchHistoryTable) Columns() []string {
	return []string{t.ID, t.AccountID, t.Image, t.Title, t.SearchType, t.CreatedAt}
}
