package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT user_id, email, password, display_name, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT user_id, email, password, display_name, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password, display_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			display_name = $2,
			password = COALESCE(NULLIF($3, ''), password),
			updated_at = $4
		WHERE user_id = $5
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var created, updated sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.CreatedAt = created.String
	u.UpdatedAt = updated.String
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return scanUser(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(user User) (User, error) {
	err := r.db.QueryRow(insertUserQuery,
		user.Email, user.Password, user.DisplayName, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Update(id int, user User) (User, error) {
	res, err := r.db.Exec(updateUserQuery,
		user.Email, user.DisplayName, user.Password, user.UpdatedAt, id,
	)
	if err != nil {
		return User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}
	user.ID = id
	return r.GetByID(id)
}
