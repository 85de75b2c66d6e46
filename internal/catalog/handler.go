package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog proxy. Keeping these behind our own API means
// the upstream key never reaches the frontend.
type Handler struct {
	api API
}

func NewHandler(api API) *Handler {
	return &Handler{api: api}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/movies/trending", h.trendingMovies)
	app.Get("/api/v1/series/trending", h.trendingSeries)
	app.Get("/api/v1/genres/:kind", h.genres)
	app.Get("/api/v1/discover/:kind", h.discover)
	app.Get("/api/v1/search", h.search)
	app.Get("/api/v1/movie/:id<[0-9]+>", h.movieDetails)
	app.Get("/api/v1/series/:id<[0-9]+>", h.seriesDetails)
}

func (h *Handler) trendingMovies(c *fiber.Ctx) error {
	items, err := h.api.GetTrending(c.UserContext(), KindMovie)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"results": items})
}

func (h *Handler) trendingSeries(c *fiber.Ctx) error {
	items, err := h.api.GetTrending(c.UserContext(), KindSeries)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"results": items})
}

func (h *Handler) genres(c *fiber.Ctx) error {
	kind, ok := ParseMediaKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid media kind"})
	}
	genres, err := h.api.GetGenres(c.UserContext(), kind)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"genres": genres})
}

func (h *Handler) discover(c *fiber.Ctx) error {
	kind, ok := ParseMediaKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid media kind"})
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	items, err := h.api.Discover(c.UserContext(), kind, c.Query("with_genres"), page)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"results": items})
}

func (h *Handler) search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Query parameter is required"})
	}
	kind, _ := ParseMediaKind(c.Query("kind"))
	items, err := h.api.Search(c.UserContext(), query, kind)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"results": items})
}

func (h *Handler) movieDetails(c *fiber.Ctx) error {
	return h.details(c, KindMovie)
}

func (h *Handler) seriesDetails(c *fiber.Ctx) error {
	return h.details(c, KindSeries)
}

func (h *Handler) details(c *fiber.Ctx, kind MediaKind) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	item, err := h.api.GetDetails(c.UserContext(), id, kind)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(item)
}

func upstreamError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "not found"})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "catalog service unavailable"})
}
