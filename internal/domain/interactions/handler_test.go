package interactions

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"med-companion/internal/platform/storage"
)

func TestCheckErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid input",
			err:        ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "check in progress",
			err:        ErrCheckInProgress,
			wantStatus: http.StatusConflict,
			wantBody:   "already in progress",
		},
		{
			name:       "schema not provisioned",
			err:        errors.Join(storage.ErrNotProvisioned, errors.New(`relation "interaction_checks" does not exist`)),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "run migrations",
		},
		{
			name:       "permission denied",
			err:        errors.Join(storage.ErrPermissionDenied, errors.New("permission denied for table interaction_checks")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "role grants",
		},
		{
			name:       "assistant failure",
			err:        fmt.Errorf("interaction check: %w: %w", ErrAssistant, errors.New("429 rate limited")),
			wantStatus: http.StatusBadGateway,
			wantBody:   "assistant unavailable",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			checkError(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantBody != "" && !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Fatalf("expected body containing %q, got %q", tc.wantBody, rec.Body.String())
			}
		})
	}
}
