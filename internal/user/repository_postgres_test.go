package user

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func userColumns() []string {
	return []string{"user_id", "email", "password", "display_name", "created_at", "updated_at"}
}

func TestPostgresGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(42, "ana@example.com", "hash", "Ana", "2026-08-30T10:00:00Z", nil)
	mock.ExpectQuery("WHERE email").WithArgs("ana@example.com").WillReturnRows(rows)

	u, err := repo.GetByEmail("ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 42 || u.DisplayName != "Ana" {
		t.Fatalf("unexpected user %+v", u)
	}
	// updated_at was NULL
	if u.UpdatedAt != "" {
		t.Fatalf("expected empty updated_at, got %q", u.UpdatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("WHERE user_id").WithArgs(999).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	if _, err := repo.GetByID(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update(999, User{Email: "ana@example.com"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
