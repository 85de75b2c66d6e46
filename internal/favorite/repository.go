package favorite

import "sync"

// Repository provides access to a user's saved titles.
type Repository interface {
	List(userID int) ([]Favorite, error)
	Get(userID, tmdbID int) (Favorite, error)
	Add(fav Favorite) (Favorite, error)
	Remove(userID, tmdbID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	favorites []Favorite
	nextID    int
}

func NewInMemoryRepository(seed []Favorite) *InMemoryRepository {
	r := &InMemoryRepository{
		favorites: make([]Favorite, 0, len(seed)),
		nextID:    1,
	}
	maxID := 0
	for _, f := range seed {
		r.favorites = append(r.favorites, f)
		if f.ID > maxID {
			maxID = f.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(userID int) ([]Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Favorite, 0)
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Get(userID, tmdbID int) (Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.favorites {
		if f.UserID == userID && f.TmdbID == tmdbID {
			return f, nil
		}
	}
	return Favorite{}, ErrNotFavorite
}

func (r *InMemoryRepository) Add(fav Favorite) (Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favorites {
		if f.UserID == fav.UserID && f.TmdbID == fav.TmdbID {
			return Favorite{}, ErrAlreadyFavorite
		}
	}
	fav.ID = r.nextID
	r.nextID++
	r.favorites = append(r.favorites, fav)
	return fav, nil
}

func (r *InMemoryRepository) Remove(userID, tmdbID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.favorites {
		if f.UserID == userID && f.TmdbID == tmdbID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}
