package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(rec.Body.Len()) {
		t.Fatalf("expected Content-Length %d, got %q", rec.Body.Len(), got)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_Taxonomy(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: usecase.ErrInvalidInput, status: http.StatusBadRequest},
		{err: usecase.ErrUnauthorized, status: http.StatusUnauthorized},
		{err: usecase.ErrForbidden, status: http.StatusForbidden},
		{err: usecase.ErrNotFound, status: http.StatusNotFound},
		{err: usecase.ErrConflict, status: http.StatusConflict},
		{err: pick.ErrDuplicate, status: http.StatusConflict},
		{err: usecase.ErrLocked, status: http.StatusLocked},
		{err: usecase.ErrDependencyUnavailable, status: http.StatusServiceUnavailable},
		{err: errors.New("disk on fire"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		wrapped := fmt.Errorf("context: %w", tt.err)
		if got := mapError(context.Background(), wrapped).HTTPStatus; got != tt.status {
			t.Fatalf("mapError(%v) status=%d want=%d", tt.err, got, tt.status)
		}
	}
}

func TestWriteError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("unexpected internal error body: %+v", body.Error)
	}
}

func TestWriteError_ManualPickIssues(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, &usecase.ManualPicksError{Issues: []usecase.PickIssue{
		{Input: usecase.ManualPickItem{Team: "Jets"}, Reason: "no game found for team 'Jets' in week"},
		{Input: usecase.ManualPickItem{}, Reason: "team is required"},
	}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || len(body.Error.Errors) != 3 {
		t.Fatalf("expected summary plus two issues, got %+v", body.Error)
	}
	if got := body.Error.Errors[1]; got.Reason != "unresolvedPick" || got.Location != "picks[0]" {
		t.Fatalf("unexpected issue item: %+v", got)
	}
	if got := body.Error.Errors[2].Message; got != "team is required" {
		t.Fatalf("unexpected issue message: %q", got)
	}
}
