// Package posts fetches destination posts from a JSON placeholder API.
package posts

// Post is a destination as returned by the remote API.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}
