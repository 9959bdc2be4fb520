package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"campustrade/pkg/errors"
	"campustrade/pkg/response"
)

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	healthHandler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	if assert.NoError(t, healthHandler(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	}
}

func TestErrorEnvelope(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errors.NotFound("Product", nil), http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", errors.Forbidden("Nope", nil), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", errors.Conflict("Taken"), http.StatusConflict, "CONFLICT"},
		{"invalid state", errors.InvalidState("Wrong phase", "pending"), http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"validation", errors.Validation("rating is out of range"), http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			assert.NoError(t, response.Error(c, tc.err))
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantCode)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestInvalidStateReportsCurrentState(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := errors.InvalidState("Only pending requests can be accepted", "accepted")
	assert.NoError(t, response.Error(c, err))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "current state: accepted")
}
