package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

var userRowColumns = []string{"id", "email", "password_hash", "salt", "username", "bio", "address", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(email, password_hash, salt, username, created_at, updated_at\)`).
					WithArgs("alice@example.com", "hash", "salt", "alice", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
			},
			wantID: "user-1",
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			u := domain.NewUser("alice@example.com", "alice", now, now)
			u.PasswordHash, u.Salt = "hash", "salt"
			err = NewUserRepository(db).Create(ctx, u)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, u.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users u WHERE u.email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("user-1", "alice@example.com", "hash", "salt", "alice", "hi", nil, now, now))

		got, err := NewUserRepository(db).GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", got.ID)
		require.NotNil(t, got.Bio)
		require.Equal(t, "hi", *got.Bio)
		require.Nil(t, got.Address)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users u WHERE u.email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		got, err := NewUserRepository(db).GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Nil(t, got)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	bio := "new bio"

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE users u SET updated_at = NOW\(\), bio = \$1 WHERE u.id = \$2 RETURNING`).
			WithArgs(bio, "user-1").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("user-1", "alice@example.com", "hash", "salt", "alice", bio, nil, now, now))

		got, err := NewUserRepository(db).UpdateProfile(ctx, "user-1", domain.ProfileUpdate{Bio: &bio})
		require.NoError(t, err)
		require.Equal(t, bio, *got.Bio)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE users u SET`).WillReturnError(sql.ErrNoRows)

		_, err = NewUserRepository(db).UpdateProfile(ctx, "missing", domain.ProfileUpdate{Bio: &bio})
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_Followers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		mock func(mock sqlmock.Sqlmock)
		call func(r domain.UserRepository) (bool, error)
		want bool
	}{
		{
			name: "add new follower",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_followers \(user_id, follower_id\)`).
					WithArgs("user-1", "user-2").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			call: func(r domain.UserRepository) (bool, error) { return r.AddFollower(ctx, "user-1", "user-2") },
			want: true,
		},
		{
			name: "add existing follower",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_followers`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			call: func(r domain.UserRepository) (bool, error) { return r.AddFollower(ctx, "user-1", "user-2") },
			want: false,
		},
		{
			name: "remove follower",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM user_followers WHERE user_id = \$1 AND follower_id = \$2`).
					WithArgs("user-1", "user-2").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			call: func(r domain.UserRepository) (bool, error) { return r.RemoveFollower(ctx, "user-1", "user-2") },
			want: true,
		},
		{
			name: "is follower",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("user-1", "user-2").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			call: func(r domain.UserRepository) (bool, error) { return r.IsFollower(ctx, "user-1", "user-2") },
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := tt.call(NewUserRepository(db))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("list followers", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`JOIN user_followers f ON f.follower_id = u.id\s+WHERE f.user_id = \$1`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("user-2", "bob@example.com", "h", "s", "bob", nil, nil, now, now))

		got, err := NewUserRepository(db).ListFollowers(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "bob", got[0].Username)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list followings", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`JOIN user_followers f ON f.user_id = u.id\s+WHERE f.follower_id = \$1`).
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		got, err := NewUserRepository(db).ListFollowings(ctx, "user-2")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
