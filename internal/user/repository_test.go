// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/user-management-service/internal/core"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() }) //nolint:errcheck // test cleanup

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewRepository(db), mock
}

func userRows(users ...User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "role", "active",
		"created_at", "updated_at",
	})
	for _, u := range users {
		rows.AddRow(
			u.ID, u.Name, u.Email, u.Phone, u.Role, u.Active,
			u.CreatedAt, u.UpdatedAt,
		)
	}
	return rows
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Test User", "test@example.com", "", RoleUser, true).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(1), now, now),
		)

	user := &User{
		Name:   "Test User",
		Email:  "test@example.com",
		Role:   RoleUser,
		Active: true,
	}
	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicateKey(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "users_email_key",
		})

	err := repo.Create(context.Background(), &User{
		Name:  "Test User",
		Email: "taken@example.com",
		Role:  RoleUser,
	})

	require.ErrorIs(t, err, core.ErrDuplicateKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(userRows(User{
			ID:        1,
			Name:      "Test User",
			Email:     "test@example.com",
			Role:      RoleUser,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}))

	user, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryExistsByEmail(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "test@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepositoryListPageByActiveAndRole(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(
		regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE active = $1 AND role = $2"),
	).
		WithArgs(true, RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	now := time.Now()
	mock.ExpectQuery(
		"SELECT (.+) FROM users WHERE active = \\$1 AND role = \\$2 " +
			"ORDER BY id ASC LIMIT \\$3 OFFSET \\$4",
	).
		WithArgs(true, RoleAdmin, 10, 10).
		WillReturnRows(userRows(User{
			ID:        11,
			Name:      "Admin",
			Email:     "admin@example.com",
			Role:      RoleAdmin,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}))

	users, total, err := repo.ListPageByActiveAndRole(
		context.Background(),
		true,
		RoleAdmin,
		ListParams{Page: 1, Size: 10, SortBy: "id", SortDirection: "asc"},
	)

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, users, 1)
	assert.Equal(t, int64(11), users[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListPageSortDirectionDesc(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at DESC").
		WithArgs(10, 0).
		WillReturnRows(userRows())

	_, _, err := repo.ListPage(context.Background(), ListParams{
		Size:          10,
		SortBy:        "created_at",
		SortDirection: "DESC",
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateDuplicateKey(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE users").
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "users_email_key",
		})

	err := repo.Update(context.Background(), &User{
		ID:    1,
		Name:  "Test User",
		Email: "taken@example.com",
		Role:  RoleUser,
	})

	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &User{ID: 999, Role: RoleUser})

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 1)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 999)

	require.ErrorIs(t, err, core.ErrNotFound)
}
