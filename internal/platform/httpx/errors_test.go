package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"validation", fmt.Errorf("%w: product name is required", shared.ErrValidation), http.StatusBadRequest, "Validation Failed"},
		{"not found", shared.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"duplicate", shared.ErrDuplicate, http.StatusConflict, "Duplicate"},
		{"credentials", shared.ErrInvalidCredentials, http.StatusBadRequest, "Invalid Credentials"},
		{"token", shared.ErrTokenInvalid, http.StatusUnauthorized, "Unauthorized"},
		{"unexpected", errors.New("pg down"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondError(w, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.title)
		})
	}

	// Internal detail never leaks into the 500 body.
	w := httptest.NewRecorder()
	RespondError(w, errors.New("pg down"))
	assert.NotContains(t, w.Body.String(), "pg down")
}
