package entities

// Category is a stored question category.
// Categories are content-addressed by Slug, which is unique.
type Category struct {
	ID   int    // database identifier
	Name string // sanitized display name
	Slug string // URL-safe identifier derived from Name
}

// StoredQuestion is a row of the questions table.
type StoredQuestion struct {
	ID           int    // database identifier
	Text         string // sanitized HTML body
	CategoryID   int    // owning category
	CategoryName string // owning category name, set only by joined reads
}

// StoredAnswer is a row of the answers table.
type StoredAnswer struct {
	ID         int    // database identifier
	Text       string // sanitized answer text
	QuestionID int    // owning question
	Correct    bool   // persisted as 0/1
}
