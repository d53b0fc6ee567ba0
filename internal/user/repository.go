// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/example/user-management-service/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListPage(ctx context.Context, params ListParams) ([]User, int, error)
	ListPageByActive(
		ctx context.Context,
		active bool,
		params ListParams,
	) ([]User, int, error)
	ListPageByRole(
		ctx context.Context,
		role string,
		params ListParams,
	) ([]User, int, error)
	ListPageByActiveAndRole(
		ctx context.Context,
		active bool,
		role string,
		params ListParams,
	) ([]User, int, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = "id, name, email, phone, role, active, created_at, updated_at"

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (name, email, phone, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.Name,
		user.Email,
		user.Phone,
		user.Role,
		user.Active,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) ListPage(
	ctx context.Context,
	params ListParams,
) ([]User, int, error) {
	return r.listPage(ctx, nil, nil, params)
}

func (r *repository) ListPageByActive(
	ctx context.Context,
	active bool,
	params ListParams,
) ([]User, int, error) {
	return r.listPage(ctx, []string{"active = $1"}, []any{active}, params)
}

func (r *repository) ListPageByRole(
	ctx context.Context,
	role string,
	params ListParams,
) ([]User, int, error) {
	return r.listPage(ctx, []string{"role = $1"}, []any{role}, params)
}

func (r *repository) ListPageByActiveAndRole(
	ctx context.Context,
	active bool,
	role string,
	params ListParams,
) ([]User, int, error) {
	return r.listPage(
		ctx,
		[]string{"active = $1", "role = $2"},
		[]any{active, role},
		params,
	)
}

func (r *repository) listPage(
	ctx context.Context,
	conditions []string,
	args []any,
	params ListParams,
) ([]User, int, error) {
	params.Normalize()

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM users" + whereClause

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	direction := "ASC"
	if strings.EqualFold(params.SortDirection, "desc") {
		direction = "DESC"
	}

	argIdx := len(args) + 1

	// params.SortBy passed the sortable-column whitelist in Normalize.
	query := fmt.Sprintf(
		"SELECT "+userColumns+" FROM users%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, params.SortBy, direction, argIdx, argIdx+1)

	args = append(args, params.Size, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, role = $5, active = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.Role,
		user.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
