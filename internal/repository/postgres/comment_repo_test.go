package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO event_comments \(event_id, user_id, content, created_at\)`).
		WithArgs("ev-1", "user-1", "see you there", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow("c-1", "alice"))

	c := &domain.Comment{EventID: "ev-1", UserID: "user-1", Content: "see you there", CreatedAt: now}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), c))
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "alice", c.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "event_id", "user_id", "username", "content", "created_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM event_comments c`).
					WithArgs("ev-1", "c-1").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("c-1", "ev-1", "user-1", "alice", "hi", time.Now()))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM event_comments c`).
					WithArgs("ev-1", "c-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			c, err := NewCommentRepository(db).GetByID(ctx, "ev-1", "c-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", c.UserID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`ORDER BY c.created_at ASC`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "username", "content", "created_at"}))
	comments, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	mock.ExpectExec(`DELETE FROM event_comments WHERE id = \$1`).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, "c-1"))

	mock.ExpectExec(`DELETE FROM event_comments`).
		WithArgs("c-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(ctx, "c-2"), domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReviewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO event_reviews \(event_id, user_id, rating, content, created_at\)`).
		WithArgs("ev-1", "user-1", 4, sqlmock.AnyArg(), now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow("rv-1", "alice"))
	rv := &domain.Review{EventID: "ev-1", UserID: "user-1", Rating: 4, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, rv))
	assert.Equal(t, "rv-1", rv.ID)

	cols := []string{"id", "event_id", "user_id", "username", "rating", "content", "created_at"}
	mock.ExpectQuery(`FROM event_reviews rv`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("rv-1", "ev-1", "user-1", "alice", 4, nil, now).
			AddRow("rv-2", "ev-1", "user-2", "bob", 5, "great", now))
	reviews, err := repo.ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Nil(t, reviews[0].Content)
	require.NotNil(t, reviews[1].Content)
	assert.Equal(t, "great", *reviews[1].Content)

	require.NoError(t, mock.ExpectationsWereMet())
}
