package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventhub/internal/domain"
)

const userColumns = `u.id, u.email, u.password_hash, u.salt, u.username, u.bio, u.address, u.created_at, u.updated_at`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var bio, address sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.Username, &bio, &address, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	if address.Valid {
		u.Address = &address.String
	}
	return u, nil
}

func queryUsers(ctx context.Context, db *sql.DB, query string, args ...any) ([]*domain.User, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, salt, username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Salt, u.Username, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	set := func(column string, v string) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Username != nil {
		set("username", *upd.Username)
	}
	if upd.Bio != nil {
		set("bio", *upd.Bio)
	}
	if upd.Address != nil {
		set("address", *upd.Address)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users u SET %s WHERE u.id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

func (r *userRepository) AddFollower(ctx context.Context, userID, followerID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_followers (user_id, follower_id) VALUES ($1, $2) ON CONFLICT (user_id, follower_id) DO NOTHING`,
		userID, followerID)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (r *userRepository) RemoveFollower(ctx context.Context, userID, followerID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM user_followers WHERE user_id = $1 AND follower_id = $2`, userID, followerID)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (r *userRepository) IsFollower(ctx context.Context, userID, followerID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_followers WHERE user_id = $1 AND follower_id = $2)`,
		userID, followerID).Scan(&exists)
	return exists, err
}

func (r *userRepository) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	return queryUsers(ctx, r.DB, `SELECT `+userColumns+`
		FROM users u
		JOIN user_followers f ON f.follower_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.username`, userID)
}

func (r *userRepository) ListFollowings(ctx context.Context, userID string) ([]*domain.User, error) {
	return queryUsers(ctx, r.DB, `SELECT `+userColumns+`
		FROM users u
		JOIN user_followers f ON f.user_id = u.id
		WHERE f.follower_id = $1
		ORDER BY u.username`, userID)
}
