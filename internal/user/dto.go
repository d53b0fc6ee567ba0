// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name   string  `json:"name"             validate:"required,min=1,max=100"`
	Email  string  `json:"email"            validate:"required,email,max=255"`
	Phone  *string `json:"phone,omitempty"  validate:"omitempty,max=32"`
	Role   *string `json:"role,omitempty"   validate:"omitempty,oneof=USER ADMIN"`
	Active *bool   `json:"active,omitempty"`
}

// UpdateUserRequest carries a sparse set of field changes; nil fields are
// left untouched on the stored user.
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=1,max=100"`
	Email  *string `json:"email,omitempty"  validate:"omitempty,email,max=255"`
	Phone  *string `json:"phone,omitempty"  validate:"omitempty,max=32"`
	Role   *string `json:"role,omitempty"   validate:"omitempty,oneof=USER ADMIN"`
	Active *bool   `json:"active,omitempty"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type ListParams struct {
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"`
}

// sortableColumns is the whitelist of columns a caller may sort by;
// ListParams.SortBy never reaches SQL without passing through it.
var sortableColumns = map[string]struct{}{
	"id":         {},
	"name":       {},
	"email":      {},
	"role":       {},
	"active":     {},
	"created_at": {},
	"updated_at": {},
}

func (p *ListParams) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size < 1 {
		p.Size = 10
	}
	if p.Size > 100 {
		p.Size = 100
	}
	if _, ok := sortableColumns[p.SortBy]; !ok {
		p.SortBy = "id"
	}
}

func (p *ListParams) Offset() int {
	return p.Page * p.Size
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
