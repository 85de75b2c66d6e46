package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moviematch/moviematch-backend/internal/catalog"
	"github.com/moviematch/moviematch-backend/internal/inference"
)

// Suggester is one generative stage of the pipeline.
type Suggester interface {
	Suggest(ctx context.Context, description string) ([]Result, error)
}

// Adapter turns a text-generation service into a Suggester: it prompts the
// service, parses the structured reply, and resolves each suggested title
// back to a real catalog record. The primary and secondary stages are two
// instances of this type over different inference backends.
type Adapter struct {
	name    string
	infer   inference.Client
	catalog catalog.API
	log     zerolog.Logger
}

func NewAdapter(name string, infer inference.Client, api catalog.API, log zerolog.Logger) *Adapter {
	return &Adapter{
		name:    name,
		infer:   infer,
		catalog: api,
		log:     log.With().Str("adapter", name).Logger(),
	}
}

func buildPrompt(description string) string {
	return fmt.Sprintf(`Based on this user description: %q

Recommend up to 5 movies or TV shows that match the description.

CRITICAL INSTRUCTIONS:
1. REGIONAL CINEMA: if the user names a specific region (Bollywood, Korean, French, ...), recommend actual films from that region, never Hollywood equivalents.
2. For genre requests: match the genre accurately.
3. Prefer actual matches over popularity.
4. Respond ONLY with a JSON array of objects with these fields:
   - "title": the exact title
   - "description": a brief description of the content
   - "reason": why it matches the user's description
   - "mediaType": "movie" or "tv"`, description)
}

// suggestion is a parsed, validated candidate from the inference service.
type suggestion struct {
	Title       string
	Kind        catalog.MediaKind
	Description string
	Reason      string
}

type rawSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
	MediaType   string `json:"mediaType"`
}

// Suggest implements Suggester. Inference failures surface as errors; a
// malformed reply is zero candidates, not an error. Either way the
// orchestrator just moves on.
func (a *Adapter) Suggest(ctx context.Context, description string) ([]Result, error) {
	raw, err := a.infer.Complete(ctx, buildPrompt(description))
	if err != nil {
		return nil, fmt.Errorf("inference service: %w", err)
	}

	suggestions, ok := parseSuggestions(raw)
	if !ok {
		a.log.Warn().Msg("inference reply was not parseable, treating as zero candidates")
		return nil, nil
	}
	if len(suggestions) == 0 {
		return nil, nil
	}

	return a.resolveAll(ctx, suggestions), nil
}

// resolveAll looks candidates up in the catalog concurrently. A failed lookup
// drops that one candidate; it never aborts the batch.
func (a *Adapter) resolveAll(ctx context.Context, suggestions []suggestion) []Result {
	resolved := make([]*Result, len(suggestions))
	var wg sync.WaitGroup
	for i, sug := range suggestions {
		wg.Add(1)
		go func(i int, sug suggestion) {
			defer wg.Done()
			if result, ok := a.resolve(ctx, sug); ok {
				resolved[i] = &result
			}
		}(i, sug)
	}
	wg.Wait()

	results := make([]Result, 0, len(suggestions))
	for _, r := range resolved {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

func (a *Adapter) resolve(ctx context.Context, sug suggestion) (Result, bool) {
	hits, err := a.catalog.Search(ctx, sug.Title, sug.Kind)
	if err != nil {
		a.log.Warn().Str("title", sug.Title).Err(err).Msg("candidate search failed, dropping")
		return Result{}, false
	}
	if len(hits) == 0 {
		a.log.Debug().Str("title", sug.Title).Msg("no catalog match for candidate")
		return Result{}, false
	}

	// first hit wins; the catalog's own relevance ordering is trusted
	match := hits[0]
	item := match
	if detail, err := a.catalog.GetDetails(ctx, match.ID, sug.Kind); err == nil {
		item = detail
	} else {
		a.log.Debug().Int("id", match.ID).Err(err).Msg("detail lookup failed, using search summary")
	}

	overview := item.Overview
	if overview == "" {
		overview = sug.Description
	}
	poster := item.PosterPath
	if poster == "" {
		poster = match.PosterPath
	}

	return Result{
		CatalogID:     item.ID,
		Title:         item.Title,
		Overview:      overview,
		MediaKind:     sug.Kind,
		Justification: sug.Reason,
		PosterPath:    poster,
	}, true
}

// unmarshalSuggestions accepts either a bare JSON array or an object wrapping
// it under "recommendations" (the chat-completions JSON mode produces the
// latter).
func unmarshalSuggestions(content string) ([]rawSuggestion, bool) {
	var list []rawSuggestion
	if err := json.Unmarshal([]byte(content), &list); err == nil {
		return list, true
	}
	var wrapped struct {
		Recommendations []rawSuggestion `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && wrapped.Recommendations != nil {
		return wrapped.Recommendations, true
	}
	return nil, false
}

// parseSuggestions extracts a structured suggestion list from a generative
// reply. This is the single malformed-response boundary: ok == false means
// the reply is unusable and the stage produced nothing.
func parseSuggestions(raw string) ([]suggestion, bool) {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	parsed, ok := unmarshalSuggestions(content)
	if !ok {
		// models often wrap the array in prose; retry on the bracketed slice
		start := strings.Index(content, "[")
		end := strings.LastIndex(content, "]")
		if start == -1 || end <= start {
			return nil, false
		}
		parsed, ok = unmarshalSuggestions(content[start : end+1])
		if !ok {
			return nil, false
		}
	}

	suggestions := make([]suggestion, 0, len(parsed))
	for _, r := range parsed {
		if r.Title == "" {
			continue
		}
		kind, valid := catalog.ParseMediaKind(r.MediaType)
		if !valid {
			continue
		}
		suggestions = append(suggestions, suggestion{
			Title:       r.Title,
			Kind:        kind,
			Description: r.Description,
			Reason:      r.Reason,
		})
		if len(suggestions) == maxResults {
			break
		}
	}
	return suggestions, true
}
