package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

// KeywordRecommender is the last stage of the pipeline: fully deterministic,
// no inference service involved. It builds a candidate pool from catalog
// searches and ranks it with Score.
type KeywordRecommender struct {
	catalog catalog.API
	log     zerolog.Logger
}

func NewKeywordRecommender(api catalog.API, log zerolog.Logger) *KeywordRecommender {
	return &KeywordRecommender{
		catalog: api,
		log:     log.With().Str("component", "keyword").Logger(),
	}
}

func (k *KeywordRecommender) Recommend(ctx context.Context, description string) ([]Result, error) {
	lower := strings.ToLower(description)
	region := detectRegion(lower)
	moods := detectMoods(lower)
	genres := genreKeywords(descriptionKeywords(lower, region))

	pool := k.acquire(ctx, description, region, moods, genres)
	if len(pool) == 0 {
		return nil, nil
	}

	k.annotateGenres(ctx, pool)
	pool = qualityFilter(pool)

	reason := fmt.Sprintf("Based on your search for %q", description)
	if region != "" {
		reason += fmt.Sprintf(" and region %q", region)
	}

	results := make([]Result, 0, maxResults)
	for _, scored := range Score(description, pool) {
		item := scored.Item
		results = append(results, Result{
			CatalogID:     item.ID,
			Title:         item.Title,
			Overview:      item.Overview,
			MediaKind:     item.MediaKind,
			Justification: reason,
			PosterPath:    item.PosterPath,
		})
	}
	return results, nil
}

// acquire builds the candidate pool: region-boosted query first, then the raw
// description, then a mood or generic high-signal query as a last resort.
func (k *KeywordRecommender) acquire(ctx context.Context, description, region string, moods, genres []string) []catalog.Item {
	var pool []catalog.Item

	if region != "" {
		pool = k.search(ctx, region+" "+description)
		if len(pool) == 0 && region == "bollywood" {
			pool = k.bollywoodSearch(ctx, genres)
		}
	}

	if len(pool) == 0 {
		pool = k.search(ctx, description)
	}

	if len(pool) == 0 {
		query := "popular acclaimed"
		if len(moods) > 0 {
			query = moodSearchTokens[moods[0]]
		}
		pool = k.search(ctx, query)
	}

	return pool
}

// bollywoodSearch pairs well-known personalities with the detected genre
// keywords until a combination yields results.
func (k *KeywordRecommender) bollywoodSearch(ctx context.Context, genres []string) []catalog.Item {
	for _, name := range bollywoodNames {
		for _, genre := range genres {
			if pool := k.search(ctx, name+" "+genre); len(pool) > 0 {
				return pool
			}
		}
	}
	if len(genres) > 0 {
		return k.search(ctx, "bollywood "+genres[0])
	}
	return nil
}

// search swallows catalog failures: a failed query is an empty pool, the
// caller falls through to the next query.
func (k *KeywordRecommender) search(ctx context.Context, query string) []catalog.Item {
	items, err := k.catalog.Search(ctx, query, "")
	if err != nil {
		k.log.Warn().Str("query", query).Err(err).Msg("candidate search failed")
		return nil
	}
	return items
}

// annotateGenres fills GenreNames from GenreIDs so the scorer can match
// genre keywords against search results, which only carry ids. Best effort:
// a failed genre lookup leaves names empty.
func (k *KeywordRecommender) annotateGenres(ctx context.Context, pool []catalog.Item) {
	names := make(map[int]string)
	for _, kind := range []catalog.MediaKind{catalog.KindMovie, catalog.KindSeries} {
		genres, err := k.catalog.GetGenres(ctx, kind)
		if err != nil {
			k.log.Debug().Str("kind", string(kind)).Err(err).Msg("genre list unavailable")
			continue
		}
		for _, g := range genres {
			if _, seen := names[g.ID]; !seen {
				names[g.ID] = g.Name
			}
		}
	}
	if len(names) == 0 {
		return
	}
	for i := range pool {
		if len(pool[i].GenreNames) > 0 {
			continue
		}
		for _, id := range pool[i].GenreIDs {
			if name, ok := names[id]; ok {
				pool[i].GenreNames = append(pool[i].GenreNames, name)
			}
		}
	}
}

// qualityFilter biases the pool toward well-rated or popular titles, unless
// that would empty it.
func qualityFilter(pool []catalog.Item) []catalog.Item {
	filtered := make([]catalog.Item, 0, len(pool))
	for _, item := range pool {
		if item.Rating >= 7.0 || item.Popularity > 50 {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return pool
	}
	return filtered
}
