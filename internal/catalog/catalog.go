package catalog

import (
	"context"
	"errors"
)

var (
	ErrUnavailable = errors.New("catalog service unavailable")
	ErrNotFound    = errors.New("catalog item not found")
)

// MediaKind distinguishes films from television series. The external catalog
// calls series "tv"; we accept that spelling on input but never emit it.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

func ParseMediaKind(s string) (MediaKind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "series", "tv":
		return KindSeries, true
	}
	return "", false
}

// upstreamPath is the path segment the catalog service expects for this kind.
func (k MediaKind) upstreamPath() string {
	if k == KindSeries {
		return "tv"
	}
	return string(k)
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Item is a read-only catalog record. GenreIDs comes from list endpoints,
// GenreNames from detail lookups; either may be empty.
type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview"`
	MediaKind   MediaKind `json:"mediaKind"`
	GenreIDs    []int     `json:"genreIds,omitempty"`
	GenreNames  []string  `json:"genreNames,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	Popularity  float64   `json:"popularity"`
	Rating      float64   `json:"rating"`
	PosterPath  string    `json:"posterPath,omitempty"`
}

// API is the full catalog surface. *Client implements it; handler and
// pipeline tests substitute fakes.
type API interface {
	Search(ctx context.Context, query string, kind MediaKind) ([]Item, error)
	GetDetails(ctx context.Context, id int, kind MediaKind) (Item, error)
	GetSimilar(ctx context.Context, id int, kind MediaKind) ([]Item, error)
	GetRecommendations(ctx context.Context, id int, kind MediaKind) ([]Item, error)
	GetTrending(ctx context.Context, kind MediaKind) ([]Item, error)
	GetGenres(ctx context.Context, kind MediaKind) ([]Genre, error)
	Discover(ctx context.Context, kind MediaKind, withGenres string, page int) ([]Item, error)
}
