package presentation

import (
	"time"

	"github.com/zjrosen/wayfarer/internal/favorites"
	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/posts"
	"github.com/zjrosen/wayfarer/internal/theme"
)

// PostDTO represents a fetched destination for presentation
type PostDTO struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"user_id"`
}

// FavoriteDTO represents a bookmarked destination
type FavoriteDTO struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"added_at"`
}

// PositionDTO represents a resolved location
type PositionDTO struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy_m"`
	Place     string    `json:"place,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ThemeDTO reports the effective theme and where it came from
type ThemeDTO struct {
	Mode     string `json:"mode"`
	Explicit bool   `json:"explicit"`
}

// FromPost converts a post to a DTO.
func FromPost(p posts.Post) PostDTO {
	return PostDTO{ID: p.ID, Title: p.Title, Body: p.Body, UserID: p.UserID}
}

// FromFavorites converts favorites, preserving order. The result is never
// nil so an empty registry encodes as [].
func FromFavorites(favs []favorites.Favorite) []FavoriteDTO {
	out := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		out = append(out, FavoriteDTO{
			ID:      f.ID,
			Title:   f.Title,
			AddedAt: time.UnixMilli(f.Timestamp).UTC(),
		})
	}
	return out
}

// FromPosition converts a position to a DTO.
func FromPosition(p geo.Position) PositionDTO {
	return PositionDTO{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  p.Accuracy,
		Place:     p.Place,
		Timestamp: p.Timestamp.UTC(),
	}
}

// FromTheme describes the service's current mode.
func FromTheme(s *theme.Service) ThemeDTO {
	_, explicit := s.Explicit()
	return ThemeDTO{Mode: s.Current().String(), Explicit: explicit}
}
