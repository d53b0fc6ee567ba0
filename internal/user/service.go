// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"github.com/example/user-management-service/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser persists a new user, defaulting role to USER and active to true
// when unspecified. The email pre-check produces a friendly Conflict; the
// unique constraint on users.email remains the final authority and a
// save-time violation surfaces as the same ErrDuplicateKey.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf(
			"user with email %s already exists: %w",
			req.Email,
			core.ErrDuplicateKey,
		)
	}

	user := &User{
		Name:   req.Name,
		Email:  req.Email,
		Role:   RoleUser,
		Active: true,
	}

	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetAllUsersPage(
	ctx context.Context,
	params ListParams,
) ([]User, int, error) {
	return s.repo.ListPage(ctx, params)
}

// GetUsersWithFilter dispatches to the narrowest repository query for the
// present filters. An explicit active=false with no role filter returns the
// unfiltered page, matching the long-standing behavior callers depend on.
func (s *Service) GetUsersWithFilter(
	ctx context.Context,
	active *bool,
	role *string,
	params ListParams,
) ([]User, int, error) {
	switch {
	case active != nil && role != nil:
		return s.repo.ListPageByActiveAndRole(ctx, *active, *role, params)
	case active != nil:
		if *active {
			return s.repo.ListPageByActive(ctx, true, params)
		}
		return s.repo.ListPage(ctx, params)
	case role != nil:
		return s.repo.ListPageByRole(ctx, *role, params)
	default:
		return s.repo.ListPage(ctx, params)
	}
}

// UpdateUser applies the non-nil fields of req onto the stored user. A
// changed email is checked for uniqueness before the write; id and
// created_at are never touched.
func (s *Service) UpdateUser(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf(
				"user with email %s already exists: %w",
				*req.Email,
				core.ErrDuplicateKey,
			)
		}
		user.Email = *req.Email
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user not found with id %d: %w", id, core.ErrNotFound)
	}

	return s.repo.Delete(ctx, id)
}
