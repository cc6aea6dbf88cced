// Package favorites implements the persisted favorites registry.
//
// The registry keeps an ordered, id-unique collection of bookmarked posts,
// newest first. Every mutation rewrites the whole collection as one JSON
// array under a single kv key and then notifies subscribers synchronously.
package favorites

// Favorite is a bookmarked post. Timestamp is milliseconds since the Unix
// epoch at the time it was added.
type Favorite struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
}

func clone(favs []Favorite) []Favorite {
	out := make([]Favorite, len(favs))
	copy(out, favs)
	return out
}

func indexOf(favs []Favorite, id int) int {
	for i, f := range favs {
		if f.ID == id {
			return i
		}
	}
	return -1
}
