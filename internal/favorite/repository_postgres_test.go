package favorite

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/moviematch/moviematch-backend/internal/catalog"
)

func favoriteColumns() []string {
	return []string{"favorite_id", "user_id", "tmdb_id", "media_kind", "title", "poster_path", "genre_ids", "created_at"}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(favoriteColumns()).
		AddRow(2, 42, 70523, "series", "Dark", "/dark.jpg", []byte("{18,9648}"), "2026-08-30T10:00:00Z").
		AddRow(1, 42, 27205, "movie", "Inception", nil, []byte("{28,878}"), "2026-08-29T10:00:00Z")
	mock.ExpectQuery("FROM favorites").WithArgs(42).WillReturnRows(rows)

	favs, err := repo.List(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favs))
	}
	if favs[0].Title != "Dark" || favs[0].MediaKind != catalog.KindSeries {
		t.Fatalf("unexpected first favorite: %+v", favs[0])
	}
	if len(favs[0].GenreIDs) != 2 || favs[0].GenreIDs[0] != 18 {
		t.Fatalf("unexpected genre ids: %v", favs[0].GenreIDs)
	}
	// poster_path was NULL for the second row
	if favs[1].PosterPath != "" {
		t.Fatalf("expected empty poster path, got %q", favs[1].PosterPath)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO favorites").
		WillReturnRows(sqlmock.NewRows([]string{"favorite_id"}).AddRow(7))

	fav, err := repo.Add(Favorite{
		UserID: 42, TmdbID: 27205, MediaKind: catalog.KindMovie,
		Title: "Inception", GenreIDs: []int{28, 878},
		CreatedAt: "2026-08-30T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fav.ID != 7 {
		t.Fatalf("expected assigned id 7, got %d", fav.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresAddConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// ON CONFLICT DO NOTHING yields no RETURNING row
	mock.ExpectQuery("INSERT INTO favorites").
		WillReturnRows(sqlmock.NewRows([]string{"favorite_id"}))

	_, err = repo.Add(Favorite{UserID: 42, TmdbID: 27205, MediaKind: catalog.KindMovie, Title: "Inception"})
	if !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM favorites").WithArgs(42, 27205).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Remove(42, 27205); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM favorites").WithArgs(42, 99999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Remove(42, 99999); !errors.Is(err, ErrNotFavorite) {
		t.Fatalf("expected ErrNotFavorite, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM favorites").WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows(favoriteColumns()))

	if _, err := repo.Get(42, 1); !errors.Is(err, ErrNotFavorite) {
		t.Fatalf("expected ErrNotFavorite, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
