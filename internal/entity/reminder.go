package entity

// Reminder is a scheduled notification item. It has no relation to the
// report history.
type Reminder struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Date  string `json:"date"` // YYYY-MM-DD
}
