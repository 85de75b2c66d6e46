package favorite

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listFavoritesQuery = `
		SELECT favorite_id, user_id, tmdb_id, media_kind, title, poster_path, genre_ids, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	getFavoriteQuery = `
		SELECT favorite_id, user_id, tmdb_id, media_kind, title, poster_path, genre_ids, created_at
		FROM favorites
		WHERE user_id = $1 AND tmdb_id = $2
	`
	addFavoriteQuery = `
		INSERT INTO favorites (user_id, tmdb_id, media_kind, title, poster_path, genre_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, tmdb_id) DO NOTHING
		RETURNING favorite_id
	`
	removeFavoriteQuery = `
		DELETE FROM favorites WHERE user_id = $1 AND tmdb_id = $2
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanFavorite(scan func(dest ...any) error) (Favorite, error) {
	var f Favorite
	var kind string
	var poster sql.NullString
	var genreIDs pq.Int64Array
	if err := scan(&f.ID, &f.UserID, &f.TmdbID, &kind, &f.Title, &poster, &genreIDs, &f.CreatedAt); err != nil {
		return Favorite{}, err
	}
	f.MediaKind = catalog.MediaKind(kind)
	if poster.Valid {
		f.PosterPath = poster.String
	}
	f.GenreIDs = make([]int, len(genreIDs))
	for i, id := range genreIDs {
		f.GenreIDs[i] = int(id)
	}
	return f, nil
}

func (r *PostgresRepository) List(userID int) ([]Favorite, error) {
	rows, err := r.db.Query(listFavoritesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Favorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(userID, tmdbID int) (Favorite, error) {
	f, err := scanFavorite(r.db.QueryRow(getFavoriteQuery, userID, tmdbID).Scan)
	if err == sql.ErrNoRows {
		return Favorite{}, ErrNotFavorite
	}
	return f, err
}

func (r *PostgresRepository) Add(fav Favorite) (Favorite, error) {
	genreIDs := make(pq.Int64Array, len(fav.GenreIDs))
	for i, id := range fav.GenreIDs {
		genreIDs[i] = int64(id)
	}
	err := r.db.QueryRow(addFavoriteQuery,
		fav.UserID, fav.TmdbID, string(fav.MediaKind), fav.Title,
		sql.NullString{String: fav.PosterPath, Valid: fav.PosterPath != ""},
		genreIDs, fav.CreatedAt,
	).Scan(&fav.ID)
	if err == sql.ErrNoRows {
		// conflict target hit: the row already exists
		return Favorite{}, ErrAlreadyFavorite
	}
	if err != nil {
		return Favorite{}, err
	}
	return fav, nil
}

func (r *PostgresRepository) Remove(userID, tmdbID int) error {
	res, err := r.db.Exec(removeFavoriteQuery, userID, tmdbID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFavorite
	}
	return nil
}
