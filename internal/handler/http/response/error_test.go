package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stafftrack/hr-backend-go/internal/domain/checkin"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
	"github.com/stafftrack/hr-backend-go/internal/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return resp
}

func TestHandleError_StoreUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, database.StoreError("query check-ins", errors.New("connection refused")))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	resp := decode(t, rec)
	if resp.Error == nil || resp.Error.Code != "SERVICE_UNAVAILABLE" {
		t.Errorf("unexpected error detail: %+v", resp.Error)
	}
}

func TestHandleError_DomainConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, checkin.ErrAlreadyCheckedIn)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	resp := decode(t, rec)
	if resp.Error == nil || resp.Error.Details["latitude"] == "" {
		t.Errorf("expected latitude detail, got %+v", resp.Error)
	}
}

func TestHandleError_UnknownFallsToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("something else"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
