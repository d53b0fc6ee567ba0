// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

type paginatedEnvelope struct {
	Success       bool `json:"success"`
	Data          any  `json:"data"`
	Page          int  `json:"page"`
	PageSize      int  `json:"page_size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(w http.ResponseWriter, data any, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	writeJSON(w, http.StatusOK, paginatedEnvelope{
		Success:       true,
		Data:          data,
		Page:          page,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, BadRequestError(message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource+" not found"))
}

func Conflict(w http.ResponseWriter, message string) {
	JSONError(w, ConflictError(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, ForbiddenError(message))
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	JSONError(w, InternalError(err))
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = InternalError(err)
	}

	writeJSON(w, appErr.Status, envelope{
		Success: false,
		Error:   appErr,
	})
}

// FormatValidationError flattens validator.ValidationErrors into a single
// human-readable message; any other error is passed through unchanged.
func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fieldErr.Field()+" is required")
		case "email":
			messages = append(messages, fieldErr.Field()+" must be a valid email address")
		case "oneof":
			messages = append(
				messages,
				fieldErr.Field()+" must be one of: "+fieldErr.Param(),
			)
		case "min":
			messages = append(
				messages,
				fieldErr.Field()+" must be at least "+fieldErr.Param()+" characters",
			)
		case "max":
			messages = append(
				messages,
				fieldErr.Field()+" must be at most "+fieldErr.Param()+" characters",
			)
		default:
			messages = append(messages, fieldErr.Field()+" is invalid")
		}
	}

	return strings.Join(messages, "; ")
}
