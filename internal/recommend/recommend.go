// Package recommend implements the recommendation pipeline: a primary
// generative recommender, a secondary generative recommender, and a
// deterministic keyword/region scorer, tried strictly in that order. All
// three stages normalize into the same result shape.
package recommend

import (
	"errors"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

var ErrInvalidRequest = errors.New("description is required")

// Provenance records which stage produced a result.
type Provenance string

const (
	ProvenancePrimary   Provenance = "primary-generative"
	ProvenanceSecondary Provenance = "secondary-generative"
	ProvenanceKeyword   Provenance = "keyword"

	// algorithmic mode, outside the fallback chain
	ProvenanceFavorites Provenance = "favorites"
	ProvenanceTrending  Provenance = "trending"
)

// Result is the one output shape every stage converges to. Immutable once
// constructed.
type Result struct {
	CatalogID     int               `json:"catalogId"`
	Title         string            `json:"title"`
	Overview      string            `json:"overview"`
	MediaKind     catalog.MediaKind `json:"mediaKind"`
	Justification string            `json:"justification,omitempty"`
	PosterPath    string            `json:"posterPath,omitempty"`
	Provenance    Provenance        `json:"provenance"`
	IsFallback    bool              `json:"isFallback"`
}

// FavoriteRef is a weak reference into the caller's persisted favorites.
type FavoriteRef struct {
	CatalogID int
	MediaKind catalog.MediaKind
}

// Response is the reply for the description-driven entry point.
type Response struct {
	Results        []Result `json:"results"`
	Fallback       bool     `json:"fallback"`
	FallbackSource string   `json:"fallbackSource,omitempty"`
}

func itemsToResults(items []catalog.Item, provenance Provenance) []Result {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		results = append(results, Result{
			CatalogID:  item.ID,
			Title:      item.Title,
			Overview:   item.Overview,
			MediaKind:  item.MediaKind,
			PosterPath: item.PosterPath,
			Provenance: provenance,
		})
	}
	return results
}
