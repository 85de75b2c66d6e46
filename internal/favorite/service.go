package favorite

import (
	"errors"
	"time"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

var ErrInvalidFavorite = errors.New("invalid favorite")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Favorite, error) {
	if userID <= 0 {
		return nil, ErrInvalidFavorite
	}
	return s.repo.List(userID)
}

func (s *Service) Add(userID int, fav Favorite) (Favorite, error) {
	if userID <= 0 || fav.TmdbID <= 0 || fav.Title == "" {
		return Favorite{}, ErrInvalidFavorite
	}
	if _, ok := catalog.ParseMediaKind(string(fav.MediaKind)); !ok {
		return Favorite{}, ErrInvalidFavorite
	}
	fav.UserID = userID
	fav.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Add(fav)
}

func (s *Service) Remove(userID, tmdbID int) error {
	if userID <= 0 || tmdbID <= 0 {
		return ErrInvalidFavorite
	}
	return s.repo.Remove(userID, tmdbID)
}
