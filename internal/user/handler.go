// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/example/user-management-service/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/paginated", h.ListUsersPaginated)
		r.Get("/filter", h.ListUsersFiltered)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}", h.UpdateUser)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write([]byte("User Management Service is running!"))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "user with email "+req.Email+" already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, fmt.Sprintf("user with id %d", id))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UserListResponse{Users: ToUserResponseList(users)})
}

func (h *Handler) ListUsersPaginated(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	users, total, err := h.service.GetAllUsersPage(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToUserResponseList(users), params.Page, params.Size, total)
}

// ListUsersFiltered filters by optional active and role query parameters;
// an absent parameter leaves that dimension unconstrained.
func (h *Handler) ListUsersFiltered(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			core.BadRequest(w, "active must be true or false")
			return
		}
		active = &parsed
	}

	var role *string
	if raw := r.URL.Query().Get("role"); raw != "" {
		if !ValidRole(raw) {
			core.BadRequest(w, "role must be one of: USER ADMIN")
			return
		}
		role = &raw
	}

	users, total, err := h.service.GetUsersWithFilter(
		r.Context(),
		active,
		role,
		params,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToUserResponseList(users), params.Page, params.Size, total)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, fmt.Sprintf("user with id %d", id))
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			message := "email already in use"
			if req.Email != nil {
				message = "user with email " + *req.Email + " already exists"
			}
			core.Conflict(w, message)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, fmt.Sprintf("user with id %d", id))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}

func parseListParams(r *http.Request) ListParams {
	params := ListParams{
		Page:          parseIntQuery(r, "page", 0),
		Size:          parseIntQuery(r, "size", 10),
		SortBy:        r.URL.Query().Get("sortBy"),
		SortDirection: r.URL.Query().Get("sortDirection"),
	}
	if params.SortBy == "" {
		params.SortBy = "id"
	}
	if params.SortDirection == "" {
		params.SortDirection = "asc"
	}
	params.Normalize()
	return params
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
