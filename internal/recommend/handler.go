package recommend

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/moviematch/moviematch-backend/internal/favorite"
	"github.com/moviematch/moviematch-backend/internal/user"
)

// Pipeline is what the handler needs from the recommender; tests swap in a
// stub.
type Pipeline interface {
	Recommend(ctx context.Context, description string) (Response, error)
	RecommendFromFavorites(ctx context.Context, favorites []FavoriteRef) ([]Result, error)
}

// FavoritesSource supplies the caller's saved titles for the algorithmic
// mode. *favorite.Service satisfies it.
type FavoritesSource interface {
	List(userID int) ([]favorite.Favorite, error)
}

type Handler struct {
	pipeline  Pipeline
	favorites FavoritesSource
}

func NewHandler(pipeline Pipeline, favorites FavoritesSource) *Handler {
	return &Handler{pipeline: pipeline, favorites: favorites}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/recommendations/by-description", h.byDescription)
	app.Get("/api/v1/recommendations/by-favorites", h.byFavorites)
}

type descriptionRequest struct {
	Description string `json:"description"`
}

func (h *Handler) byDescription(c *fiber.Ctx) error {
	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(descriptionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Description is required."})
	}
	if strings.TrimSpace(payload.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Description is required."})
	}

	resp, err := h.pipeline.Recommend(c.UserContext(), payload.Description)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Description is required."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to build recommendations"})
	}

	return c.JSON(resp)
}

func (h *Handler) byFavorites(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	favs, err := h.favorites.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load favorites"})
	}

	refs := make([]FavoriteRef, 0, len(favs))
	for _, f := range favs {
		refs = append(refs, FavoriteRef{CatalogID: f.TmdbID, MediaKind: f.MediaKind})
	}

	results, err := h.pipeline.RecommendFromFavorites(c.UserContext(), refs)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "catalog service unavailable"})
	}

	return c.JSON(fiber.Map{"results": results})
}
