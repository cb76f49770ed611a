package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"courtbook/shared/failure"
	"courtbook/transport/http/response"
)

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "bk_1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"bk_1"}}`, recorder.Body.String())
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithMessage(recorder, http.StatusOK, "Booking purged")

	assert.JSONEq(t, `{"message":"Booking purged"}`, recorder.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "typed failure",
			err:      failure.NotFound("court c9 not found"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"court c9 not found"}`,
		},
		{
			name:     "conflict carries reason",
			err:      fmt.Errorf("confirm: %w", failure.ConflictWithReason(failure.ReasonSlotTaken, "Slot was just booked by someone else.")),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Slot was just booked by someone else.","reason":"slot_taken"}`,
		},
		{
			name:     "untyped error is masked",
			err:      errors.New(`pq: relation "bookings" does not exist`),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestCannedResponses(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithRequestLimitExceeded(recorder)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	recorder = httptest.NewRecorder()
	response.WithPreparingShutdown(recorder)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	recorder = httptest.NewRecorder()
	response.WithUnhealthy(recorder)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
