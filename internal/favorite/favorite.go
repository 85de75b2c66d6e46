package favorite

import (
	"errors"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

var (
	ErrAlreadyFavorite = errors.New("title already in favorites")
	ErrNotFavorite     = errors.New("title not in favorites")
)

// Favorite is one saved title. Genre ids are captured at save time so the
// recommendation pipeline can seed from favorites without a catalog round
// trip.
type Favorite struct {
	ID         int               `json:"favoriteId"`
	UserID     int               `json:"-"`
	TmdbID     int               `json:"tmdbId"`
	MediaKind  catalog.MediaKind `json:"mediaKind"`
	Title      string            `json:"title"`
	PosterPath string            `json:"posterPath,omitempty"`
	GenreIDs   []int             `json:"genreIds,omitempty"`
	CreatedAt  string            `json:"createdAt,omitempty"`
}
