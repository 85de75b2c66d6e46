package recommend

import (
	"sort"
	"strings"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

const maxResults = 5

// ScoredCandidate pairs a catalog item with its accumulated keyword score.
// Scores only ever increase while the rules run.
type ScoredCandidate struct {
	Item  catalog.Item
	Score int
}

// Score ranks candidates against a free-text description. It is a pure
// function: same description and candidates, same ordered output.
//
// Per keyword: +3 title match, +2 overview match, +2 per matching genre name.
// Recognized genre keywords add a further +4 per matching genre name. A
// detected region adds +5/+3 for title/overview matches, and the Bollywood
// case additionally checks a list of personality names at +4/+3.
func Score(description string, candidates []catalog.Item) []ScoredCandidate {
	lower := strings.ToLower(description)
	region := detectRegion(lower)
	keywords := descriptionKeywords(lower, region)
	genres := genreKeywords(keywords)

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, item := range candidates {
		title := strings.ToLower(item.Title)
		overview := strings.ToLower(item.Overview)

		score := 0
		for _, keyword := range keywords {
			if strings.Contains(title, keyword) {
				score += 3
			}
			if strings.Contains(overview, keyword) {
				score += 2
			}
			for _, genre := range item.GenreNames {
				if strings.Contains(strings.ToLower(genre), keyword) {
					score += 2
				}
			}
		}

		for _, genreKeyword := range genres {
			for _, genre := range item.GenreNames {
				if strings.Contains(strings.ToLower(genre), genreKeyword) {
					score += 4
				}
			}
		}

		if region != "" {
			if strings.Contains(title, region) {
				score += 5
			}
			if strings.Contains(overview, region) {
				score += 3
			}
			if region == "bollywood" {
				for _, name := range bollywoodNames {
					if strings.Contains(title, name) {
						score += 4
					}
					if strings.Contains(overview, name) {
						score += 3
					}
				}
			}
		}

		scored = append(scored, ScoredCandidate{Item: item, Score: score})
	}

	// stable: ties keep their input order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
