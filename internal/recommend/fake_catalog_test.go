package recommend

import (
	"context"
	"sync"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

// fakeCatalog scripts catalog responses and records every call so tests can
// assert call order and counts.
type fakeCatalog struct {
	mu sync.Mutex

	searchResults map[string][]catalog.Item
	searchErr     error
	searchQueries []string

	details    map[int]catalog.Item
	detailsErr error

	genres    map[catalog.MediaKind][]catalog.Genre
	genresErr error

	trending      []catalog.Item
	trendingErr   error
	trendingCalls int

	recommendations map[int][]catalog.Item
	recommendSeeds  []int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		searchResults:   map[string][]catalog.Item{},
		details:         map[int]catalog.Item{},
		genres:          map[catalog.MediaKind][]catalog.Genre{},
		recommendations: map[int][]catalog.Item{},
	}
}

func (f *fakeCatalog) Search(_ context.Context, query string, _ catalog.MediaKind) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchQueries = append(f.searchQueries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[query], nil
}

func (f *fakeCatalog) GetDetails(_ context.Context, id int, _ catalog.MediaKind) (catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detailsErr != nil {
		return catalog.Item{}, f.detailsErr
	}
	item, ok := f.details[id]
	if !ok {
		return catalog.Item{}, catalog.ErrNotFound
	}
	return item, nil
}

func (f *fakeCatalog) GetSimilar(_ context.Context, id int, _ catalog.MediaKind) ([]catalog.Item, error) {
	return f.recommendations[id], nil
}

func (f *fakeCatalog) GetRecommendations(_ context.Context, id int, _ catalog.MediaKind) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recommendSeeds = append(f.recommendSeeds, id)
	return f.recommendations[id], nil
}

func (f *fakeCatalog) GetTrending(_ context.Context, _ catalog.MediaKind) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trendingCalls++
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	return f.trending, nil
}

func (f *fakeCatalog) GetGenres(_ context.Context, kind catalog.MediaKind) ([]catalog.Genre, error) {
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres[kind], nil
}

func (f *fakeCatalog) Discover(_ context.Context, _ catalog.MediaKind, _ string, _ int) ([]catalog.Item, error) {
	return nil, nil
}

func (f *fakeCatalog) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.searchQueries))
	copy(out, f.searchQueries)
	return out
}
