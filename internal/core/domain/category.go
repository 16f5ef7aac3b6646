package domain

// Category classifies transactions and budget items. Categories are scoped to
// a user and may nest one level via ParentID.
type Category struct {
	CategoryID   string  `json:"categoryID"` // Primary key (UUID)
	UserID       string  `json:"userID"`     // FK -> users.user_id
	Name         string  `json:"name"`
	Color        string  `json:"color"`
	Type         string  `json:"type"`     // "expense" or "income"
	ParentID     *string `json:"parentID"` // Nullable self reference
	ImageURL     string  `json:"imageUrl"`
	ImageVariant string  `json:"imageVariant"`
	AuditFields
}
