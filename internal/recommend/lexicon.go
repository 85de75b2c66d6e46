package recommend

import "strings"

// Static lookup tables for the keyword fallback. Loaded once, never mutated,
// safe for concurrent reads.

// regionTokens is the closed set of national-cinema qualifiers we recognize
// in a description. Order matters: the first match wins.
var regionTokens = []string{
	"bollywood",
	"korean",
	"french",
	"japanese",
	"chinese",
	"spanish",
	"italian",
	"german",
	"british",
}

// genreVocabulary is the canonical genre keyword list shared by every call
// site that needs to recognize a genre mention.
var genreVocabulary = map[string]bool{
	"comedy":      true,
	"drama":       true,
	"action":      true,
	"romance":     true,
	"thriller":    true,
	"horror":      true,
	"sci-fi":      true,
	"science":     true,
	"fiction":     true,
	"documentary": true,
	"animation":   true,
	"family":      true,
	"musical":     true,
	"western":     true,
	"war":         true,
	"crime":       true,
	"mystery":     true,
	"fantasy":     true,
	"adventure":   true,
}

// bollywoodNames are well-known Bollywood actors and directors. A title or
// overview mentioning one is a strong signal the production is actually
// Indian rather than a Hollywood film with similar themes.
var bollywoodNames = []string{
	"shah rukh khan",
	"amitabh bachchan",
	"aamir khan",
	"salman khan",
	"priyanka chopra",
	"deepika padukone",
	"karan johar",
	"yash raj",
	"raj kapoor",
}

// moodSearchTokens maps mood phrases to content-style search tokens used when
// every other candidate query comes back empty.
var moodSearchTokens = map[string]string{
	"feel-good":     "heartwarming comedy",
	"feel good":     "heartwarming comedy",
	"uplifting":     "inspiring drama",
	"dark":          "gritty thriller",
	"scary":         "horror",
	"romantic":      "romance",
	"funny":         "comedy",
	"tearjerker":    "emotional drama",
	"mind-bending":  "psychological thriller",
	"nostalgic":     "classic",
	"lighthearted":  "family comedy",
	"suspenseful":   "suspense thriller",
	"thought-provoking": "acclaimed drama",
}

// detectRegion returns the first recognized region token in the lowercased
// description, or "" when none matches.
func detectRegion(description string) string {
	for _, region := range regionTokens {
		if strings.Contains(description, region) {
			return region
		}
	}
	return ""
}

// detectMoods returns every mood phrase present in the lowercased
// description, in table-independent input order.
func detectMoods(description string) []string {
	var moods []string
	for _, phrase := range moodPhrases {
		if strings.Contains(description, phrase) {
			moods = append(moods, phrase)
		}
	}
	return moods
}

// moodPhrases fixes an iteration order for moodSearchTokens so detection is
// deterministic.
var moodPhrases = []string{
	"feel-good",
	"feel good",
	"uplifting",
	"dark",
	"scary",
	"romantic",
	"funny",
	"tearjerker",
	"mind-bending",
	"nostalgic",
	"lighthearted",
	"suspenseful",
	"thought-provoking",
}

// descriptionKeywords tokenizes a lowercased description, drops short tokens
// and removes the detected region so it is not scored twice.
func descriptionKeywords(description, region string) []string {
	fields := strings.Fields(description)
	keywords := make([]string, 0, len(fields))
	for _, word := range fields {
		if len(word) <= 3 {
			continue
		}
		if region != "" && word == region {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// genreKeywords filters a token list down to recognized genre names.
func genreKeywords(keywords []string) []string {
	var genres []string
	for _, word := range keywords {
		if genreVocabulary[word] {
			genres = append(genres, word)
		}
	}
	return genres
}
