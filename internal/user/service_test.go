// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/user-management-service/internal/core"
)

// -------- test fakes --------

type fakeRepo struct {
	Repository

	emailExists map[string]bool
	idExists    map[int64]bool
	byID        map[int64]*User

	created []*User
	updated []*User
	deleted []int64

	pageUsers []User
	pageTotal int
	lastQuery string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		emailExists: map[string]bool{},
		idExists:    map[int64]bool{},
		byID:        map[int64]*User{},
	}
}

func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.emailExists[email], nil
}

func (f *fakeRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return f.idExists[id], nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]User, error) {
	return f.pageUsers, nil
}

func (f *fakeRepo) Create(ctx context.Context, user *User) error {
	user.ID = int64(len(f.created) + 1)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.created = append(f.created, user)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now()
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) ListPage(
	ctx context.Context,
	params ListParams,
) ([]User, int, error) {
	f.lastQuery = "all"
	return f.pageUsers, f.pageTotal, nil
}

func (f *fakeRepo) ListPageByActive(
	ctx context.Context,
	active bool,
	params ListParams,
) ([]User, int, error) {
	f.lastQuery = "active"
	return f.pageUsers, f.pageTotal, nil
}

func (f *fakeRepo) ListPageByRole(
	ctx context.Context,
	role string,
	params ListParams,
) ([]User, int, error) {
	f.lastQuery = "role"
	return f.pageUsers, f.pageTotal, nil
}

func (f *fakeRepo) ListPageByActiveAndRole(
	ctx context.Context,
	active bool,
	role string,
	params ListParams,
) ([]User, int, error) {
	f.lastQuery = "activeAndRole"
	return f.pageUsers, f.pageTotal, nil
}

func ptr[T any](v T) *T {
	return &v
}

// -------- tests --------

func TestCreateUserAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "Test User",
		Email: "test@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.True(t, user.Active)
	assert.NotZero(t, user.ID)
	require.Len(t, repo.created, 1)
}

func TestCreateUserHonorsExplicitFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name:   "Admin",
		Email:  "admin@example.com",
		Phone:  ptr("+994501234567"),
		Role:   ptr(RoleAdmin),
		Active: ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.False(t, user.Active)
	assert.Equal(t, "+994501234567", user.Phone)
}

func TestServiceCreateUserDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.emailExists["taken@example.com"] = true
	svc := NewService(repo)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Name:  "Test User",
		Email: "taken@example.com",
	})

	require.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "taken@example.com")
	assert.Empty(t, repo.created)
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.GetUserByID(context.Background(), 999)

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetUsersWithFilterDispatch(t *testing.T) {
	tests := []struct {
		name      string
		active    *bool
		role      *string
		wantQuery string
	}{
		{"both filters", ptr(true), ptr(RoleAdmin), "activeAndRole"},
		{"active true only", ptr(true), nil, "active"},
		// active=false alone falls through to the unfiltered page.
		{"active false only", ptr(false), nil, "all"},
		{"role only", nil, ptr(RoleAdmin), "role"},
		{"no filters", nil, nil, "all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := NewService(repo)

			_, _, err := svc.GetUsersWithFilter(
				context.Background(),
				tt.active,
				tt.role,
				ListParams{SortBy: "id"},
			)

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, repo.lastQuery)
		})
	}
}

func TestUpdateUserPartialMerge(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &User{
		ID:     1,
		Name:   "Test User",
		Email:  "test@example.com",
		Phone:  "+994501234567",
		Role:   RoleUser,
		Active: true,
	}
	svc := NewService(repo)

	user, err := svc.UpdateUser(context.Background(), 1, UpdateUserRequest{
		Phone: ptr("+994559876543"),
	})

	require.NoError(t, err)
	assert.Equal(t, "+994559876543", user.Phone)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)
	assert.True(t, user.Active)
	require.Len(t, repo.updated, 1)
}

func TestUpdateUserSameEmailSkipsUniquenessCheck(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &User{ID: 1, Name: "Test User", Email: "test@example.com"}
	// If the unchanged email were re-checked this entry would force a conflict.
	repo.emailExists["test@example.com"] = true
	svc := NewService(repo)

	user, err := svc.UpdateUser(context.Background(), 1, UpdateUserRequest{
		Email: ptr("test@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &User{ID: 1, Name: "Test User", Email: "test@example.com"}
	repo.emailExists["existing@example.com"] = true
	svc := NewService(repo)

	_, err := svc.UpdateUser(context.Background(), 1, UpdateUserRequest{
		Email: ptr("existing@example.com"),
	})

	require.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Empty(t, repo.updated)

	stored, getErr := repo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, "test@example.com", stored.Email)
}

func TestUpdateUserNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.UpdateUser(context.Background(), 999, UpdateUserRequest{
		Name: ptr("Updated Name"),
	})

	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, repo.updated)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeRepo()
	repo.idExists[1] = true
	svc := NewService(repo)

	err := svc.DeleteUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDeleteUserNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.DeleteUser(context.Background(), 999)

	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), "999")
	assert.Empty(t, repo.deleted)
}
