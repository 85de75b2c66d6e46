package recommend

import (
	"context"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

// stage is one step of the fallback chain. The chain is modeled as a small
// state machine so the ordering guarantee is testable without any I/O.
type stage int

const (
	tryPrimary stage = iota
	trySecondary
	tryKeyword
	stageDone
)

// nextStage is the pure transition function: a stage that produced results
// ends the chain, anything else falls through to the next stage.
func nextStage(current stage, produced bool) stage {
	if produced {
		return stageDone
	}
	switch current {
	case tryPrimary:
		return trySecondary
	case trySecondary:
		return tryKeyword
	default:
		return stageDone
	}
}

// Recommender drives the pipeline. Stateless between invocations; the only
// shared data are the read-only lexicon tables.
type Recommender struct {
	primary   Suggester
	secondary Suggester
	keyword   *KeywordRecommender
	catalog   catalog.API
	pick      func(n int) int
	log       zerolog.Logger
}

func NewRecommender(primary, secondary Suggester, keyword *KeywordRecommender, api catalog.API, log zerolog.Logger) *Recommender {
	return &Recommender{
		primary:   primary,
		secondary: secondary,
		keyword:   keyword,
		catalog:   api,
		pick:      rand.Intn,
		log:       log.With().Str("component", "recommender").Logger(),
	}
}

// WithRandSource overrides the random source used by the favorites mode.
func (r *Recommender) WithRandSource(pick func(n int) int) *Recommender {
	r.pick = pick
	return r
}

// Recommend runs the three stages strictly in sequence and returns the first
// non-empty stage's results. A request that exhausts every stage returns an
// empty list, not an error.
func (r *Recommender) Recommend(ctx context.Context, description string) (Response, error) {
	if strings.TrimSpace(description) == "" {
		return Response{}, ErrInvalidRequest
	}

	for current := tryPrimary; current != stageDone; {
		var results []Result
		var err error

		switch current {
		case tryPrimary:
			results, err = r.primary.Suggest(ctx, description)
		case trySecondary:
			results, err = r.secondary.Suggest(ctx, description)
		case tryKeyword:
			results, err = r.keyword.Recommend(ctx, description)
		}

		if err != nil {
			r.log.Warn().Int("stage", int(current)).Err(err).Msg("stage failed, falling through")
			results = nil
		}
		if len(results) > 0 {
			return tagStage(current, results), nil
		}
		current = nextStage(current, false)
	}

	// every stage came up empty: a valid "no matches" terminal state
	return Response{Results: []Result{}, Fallback: true, FallbackSource: string(ProvenanceKeyword)}, nil
}

// tagStage stamps provenance and fallback flags onto a winning stage's
// results. Results from different stages are never merged.
func tagStage(winner stage, results []Result) Response {
	var provenance Provenance
	switch winner {
	case tryPrimary:
		provenance = ProvenancePrimary
	case trySecondary:
		provenance = ProvenanceSecondary
	case tryKeyword:
		provenance = ProvenanceKeyword
	}
	fallback := winner != tryPrimary

	for i := range results {
		results[i].Provenance = provenance
		results[i].IsFallback = fallback
	}

	resp := Response{Results: results, Fallback: fallback}
	if fallback {
		resp.FallbackSource = string(provenance)
	}
	return resp
}

// RecommendFromFavorites is the algorithmic mode, separate from the fallback
// chain: seed catalog recommendations from one randomly chosen favorite, or
// fall back to trending titles when the user has no favorites yet.
func (r *Recommender) RecommendFromFavorites(ctx context.Context, favorites []FavoriteRef) ([]Result, error) {
	if len(favorites) == 0 {
		items, err := r.catalog.GetTrending(ctx, "")
		if err != nil {
			return nil, err
		}
		return itemsToResults(items, ProvenanceTrending), nil
	}

	seed := favorites[r.pick(len(favorites))]
	items, err := r.catalog.GetRecommendations(ctx, seed.CatalogID, seed.MediaKind)
	if err != nil {
		return nil, err
	}
	return itemsToResults(items, ProvenanceFavorites), nil
}
