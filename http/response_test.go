package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudu-dev/tudu"
	tuduhttp "github.com/tudu-dev/tudu/http"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found",
			err:          tudu.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedErr:  "not_found",
		},
		{
			name:         "wrapped not found",
			err:          fmt.Errorf("get: %w", tudu.ErrNotFound),
			expectedCode: http.StatusNotFound,
			expectedErr:  "not_found",
		},
		{
			name:         "invalid input",
			err:          fmt.Errorf("%w: description is empty", tudu.ErrInvalidInput),
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid_input",
		},
		{
			name:         "unknown error",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			tuduhttp.HandleError(rec, tt.err)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var resp tuduhttp.ErrorResponse
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedErr, resp.Error)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := tuduhttp.WriteJSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello": "world"}`, rec.Body.String())
}
