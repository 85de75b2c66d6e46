package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client is a thin wrapper over the TMDB REST API. All operations are
// read-only; every failure maps to ErrUnavailable or ErrNotFound so callers
// can treat the catalog as a best-effort source.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With().Str("component", "catalog").Logger(),
	}
}

// itemPayload covers both the movie and tv response shapes; list endpoints
// carry genre_ids while detail endpoints carry expanded genres.
type itemPayload struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	MediaType    string  `json:"media_type"`
	GenreIDs     []int   `json:"genre_ids"`
	Genres       []Genre `json:"genres"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
}

type listPayload struct {
	Results []itemPayload `json:"results"`
}

type genreListPayload struct {
	Genres []Genre `json:"genres"`
}

func (p itemPayload) toItem(fallback MediaKind) Item {
	kind := fallback
	if k, ok := ParseMediaKind(p.MediaType); ok {
		kind = k
	} else if kind == "" {
		if p.FirstAirDate != "" {
			kind = KindSeries
		} else {
			kind = KindMovie
		}
	}
	title := p.Title
	if title == "" {
		title = p.Name
	}
	release := p.ReleaseDate
	if release == "" {
		release = p.FirstAirDate
	}
	names := make([]string, 0, len(p.Genres))
	for _, g := range p.Genres {
		names = append(names, g.Name)
	}
	return Item{
		ID:          p.ID,
		Title:       title,
		Overview:    p.Overview,
		MediaKind:   kind,
		GenreIDs:    p.GenreIDs,
		GenreNames:  names,
		ReleaseDate: release,
		Popularity:  p.Popularity,
		Rating:      p.VoteAverage,
		PosterPath:  p.PosterPath,
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("path", path).Err(err).Msg("catalog request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.log.Warn().Str("path", path).Int("status", resp.StatusCode).Msg("catalog returned non-200")
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) list(ctx context.Context, path string, params url.Values, fallback MediaKind) ([]Item, error) {
	var payload listPayload
	if err := c.get(ctx, path, params, &payload); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(payload.Results))
	for _, p := range payload.Results {
		// multi search includes people; they have no use here
		if p.MediaType == "person" {
			continue
		}
		items = append(items, p.toItem(fallback))
	}
	return items, nil
}

// Search queries the catalog by free text. An empty kind searches movies and
// series together.
func (c *Client) Search(ctx context.Context, query string, kind MediaKind) ([]Item, error) {
	params := url.Values{}
	params.Set("query", query)
	if kind == "" {
		return c.list(ctx, "/search/multi", params, "")
	}
	return c.list(ctx, "/search/"+kind.upstreamPath(), params, kind)
}

func (c *Client) GetDetails(ctx context.Context, id int, kind MediaKind) (Item, error) {
	var payload itemPayload
	path := fmt.Sprintf("/%s/%d", kind.upstreamPath(), id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return Item{}, err
	}
	return payload.toItem(kind), nil
}

func (c *Client) GetSimilar(ctx context.Context, id int, kind MediaKind) ([]Item, error) {
	path := fmt.Sprintf("/%s/%d/similar", kind.upstreamPath(), id)
	return c.list(ctx, path, nil, kind)
}

func (c *Client) GetRecommendations(ctx context.Context, id int, kind MediaKind) ([]Item, error) {
	path := fmt.Sprintf("/%s/%d/recommendations", kind.upstreamPath(), id)
	return c.list(ctx, path, nil, kind)
}

// GetTrending returns this week's trending titles. An empty kind covers both
// movies and series.
func (c *Client) GetTrending(ctx context.Context, kind MediaKind) ([]Item, error) {
	segment := "all"
	if kind != "" {
		segment = kind.upstreamPath()
	}
	return c.list(ctx, "/trending/"+segment+"/week", nil, kind)
}

func (c *Client) GetGenres(ctx context.Context, kind MediaKind) ([]Genre, error) {
	var payload genreListPayload
	if err := c.get(ctx, "/genre/"+kind.upstreamPath()+"/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

func (c *Client) Discover(ctx context.Context, kind MediaKind, withGenres string, page int) ([]Item, error) {
	params := url.Values{}
	if withGenres != "" {
		params.Set("with_genres", withGenres)
	}
	params.Set("page", strconv.Itoa(clampPage(page)))
	return c.list(ctx, "/discover/"+kind.upstreamPath(), params, kind)
}

// clampPage keeps pagination inside the range the upstream accepts.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > 1000 {
		return 1000
	}
	return page
}
