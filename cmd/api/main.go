package main

import (
	"database/sql"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/moviematch/moviematch-backend/internal/catalog"
	"github.com/moviematch/moviematch-backend/internal/favorite"
	"github.com/moviematch/moviematch-backend/internal/inference"
	"github.com/moviematch/moviematch-backend/internal/recommend"
	"github.com/moviematch/moviematch-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	setupCORS(app)
	app.Use(requestLogger(log))

	db := mustOpenDB(log)
	defer db.Close()
	bootstrapSchema(db, log)

	tmdb := catalog.NewClient(os.Getenv("TMDB_BASE_URL"), os.Getenv("TMDB_API_KEY"), log)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	favoriteRepo := favorite.NewPostgresRepository(db)
	favoriteService := favorite.NewService(favoriteRepo)
	favoriteHandler := favorite.NewHandler(favoriteService)

	primary := recommend.NewAdapter("primary-generative",
		inference.NewOpenAIClient(
			getenv("OPENAI_CHAT_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			os.Getenv("OPENAI_API_KEY"),
			getenv("OPENAI_MODEL", "gpt-4o"),
			log,
		), tmdb, log)
	secondary := recommend.NewAdapter("secondary-generative",
		inference.NewHuggingFaceClient(
			getenv("HF_ENDPOINT", "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"),
			os.Getenv("HUGGINGFACE_API_KEY"),
			log,
		), tmdb, log)
	keyword := recommend.NewKeywordRecommender(tmdb, log)
	recommender := recommend.NewRecommender(primary, secondary, keyword, tmdb, log)
	recommendHandler := recommend.NewHandler(recommender, favoriteService)

	catalogHandler := catalog.NewHandler(tmdb)

	userHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(os.Getenv("JWT_SECRET")),
	}))

	userHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	recommendHandler.RegisterProtectedRoutes(app)

	port := getenv("PORT", "8080")
	log.Info().Str("port", port).Msg("starting server")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

func mustOpenDB(log zerolog.Logger) *sql.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}
	return db
}

func bootstrapSchema(db *sql.DB, log zerolog.Logger) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			display_name TEXT NOT NULL,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			favorite_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			tmdb_id INT NOT NULL,
			media_kind TEXT NOT NULL,
			title TEXT NOT NULL,
			poster_path TEXT,
			genre_ids integer[] NOT NULL DEFAULT ARRAY[]::integer[],
			created_at TEXT,
			UNIQUE (user_id, tmdb_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal().Err(err).Msg("schema bootstrap failed")
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
