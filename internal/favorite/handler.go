package favorite

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/moviematch/moviematch-backend/internal/catalog"
	"github.com/moviematch/moviematch-backend/internal/user"
)

// Handler delegates favorite operations to the favorite service. Favorites
// routing stays isolated from the user handler.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites", h.list)
	app.Post("/api/v1/favorites", h.add)
	app.Delete("/api/v1/favorites/:tmdbId<[0-9]+>", h.remove)
}

type favoriteRequest struct {
	TmdbID     int    `json:"tmdbId"`
	MediaKind  string `json:"mediaKind"`
	Title      string `json:"title"`
	PosterPath string `json:"posterPath"`
	GenreIDs   []int  `json:"genreIds"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	favs, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(favs)
}

func (h *Handler) add(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	kind, ok := catalog.ParseMediaKind(payload.MediaKind)
	if !ok || payload.TmdbID <= 0 || payload.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "tmdbId, mediaKind and title are required"})
	}

	fav, err := h.service.Add(userID, Favorite{
		TmdbID:     payload.TmdbID,
		MediaKind:  kind,
		Title:      payload.Title,
		PosterPath: payload.PosterPath,
		GenreIDs:   payload.GenreIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyFavorite):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "title already in favorites"})
		case errors.Is(err, ErrInvalidFavorite):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fav)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	tmdbID, err := strconv.Atoi(c.Params("tmdbId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Remove(userID, tmdbID); err != nil {
		switch {
		case errors.Is(err, ErrNotFavorite):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title not in favorites"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "favorite removed"})
}
