package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	booking "github.com/velvetlens/studio-booking/internal/domain/booking"
)

func TestFromBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation is 400",
			err:        booking.ErrValidation("date_in_past", "session date in the past"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "date_in_past",
		},
		{
			name:       "policy is 400",
			err:        booking.ErrPolicy("cancellation_window_closed", "cancellation window closed"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "cancellation_window_closed",
		},
		{
			name:       "conflict is 409",
			err:        booking.ErrSlotTaken(),
			wantStatus: http.StatusConflict,
			wantCode:   "slot_taken",
		},
		{
			name:       "not found is 404",
			err:        booking.ErrNotFound("session_not_found", "session not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "session_not_found",
		},
		{
			name:       "plain error is opaque 500",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			FromBooking(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body HTTPError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if tt.wantCode == "internal_error" && body.Message != "Something went wrong." {
				t.Errorf("message = %q leaks internals", body.Message)
			}
		})
	}
}
