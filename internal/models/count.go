package models

// Count is the result of a COUNT(*) statement, kept as decimal text.
type Count struct {
	Count string `json:"count"`
}
