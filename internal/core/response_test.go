// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()

	OK(rec, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "world", body["data"].(map[string]any)["hello"])
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()

	Created(rec, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeEnvelope(t, rec)["success"])
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()

	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestPaginated(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages float64
	}{
		{"even split", 30, 10, 3},
		{"partial last page", 31, 10, 4},
		{"empty result", 0, 10, 0},
		{"zero page size", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			Paginated(rec, []string{}, 0, tt.pageSize, tt.total)

			assert.Equal(t, http.StatusOK, rec.Code)

			body := decodeEnvelope(t, rec)
			assert.Equal(t, float64(tt.total), body["total_elements"])
			assert.Equal(t, tt.wantTotalPages, body["total_pages"])
		})
	}
}

func TestJSONErrorWithAppError(t *testing.T) {
	rec := httptest.NewRecorder()

	JSONError(rec, NotFoundError("user with id 42 not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])

	errBody := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Equal(t, "user with id 42 not found", errBody["message"])
}

func TestJSONErrorWrapsPlainError(t *testing.T) {
	rec := httptest.NewRecorder()

	JSONError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	errBody := decodeEnvelope(t, rec)["error"].(map[string]any)
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
	// Internal details never leak into the response body.
	assert.NotContains(t, errBody["message"], "boom")
}

func TestAppErrorUnwrap(t *testing.T) {
	err := ConflictError("email already exists")

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.True(t, IsAppError(err))
	assert.False(t, IsAppError(errors.New("plain")))
}

func TestFormatValidationError(t *testing.T) {
	type payload struct {
		Name  string `validate:"required,max=5"`
		Email string `validate:"required,email"`
		Role  string `validate:"omitempty,oneof=USER ADMIN"`
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(payload{Name: "toolongname", Role: "NOPE"})
	require.Error(t, err)

	message := FormatValidationError(err)
	assert.Contains(t, message, "Name must be at most 5 characters")
	assert.Contains(t, message, "Email is required")
	assert.Contains(t, message, "Role must be one of: USER ADMIN")
}

func TestFormatValidationErrorPassthrough(t *testing.T) {
	assert.Equal(t, "plain error", FormatValidationError(errors.New("plain error")))
}
