package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddu-connect/backend/internal/application/adapter"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

func newResendServer(t *testing.T, status int, body map[string]any, received *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if received != nil {
			_ = json.NewDecoder(r.Body).Decode(received)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResendClient_Send(t *testing.T) {
	var received map[string]any
	srv := newResendServer(t, http.StatusOK, map[string]any{"id": "re_123"}, &received)

	client, err := NewResendClient("re_test", "DDU Connect", "noreply@ddu.edu.et", WithBaseURL(srv.URL))
	require.NoError(t, err)

	result, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "abebe@ddu.edu.et",
		Subject: "Password Reset OTP - DDU Connect",
		HTML:    "<p>123456</p>",
		Text:    "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "re_123", result.MessageID)
	assert.Equal(t, "DDU Connect <noreply@ddu.edu.et>", received["from"])
	assert.Equal(t, "Password Reset OTP - DDU Connect", received["subject"])
	assert.Equal(t, "123456", received["text"])
}

func TestResendClient_SendFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		wantCode domainerror.EmailErrorCode
		wantErr  error
	}{
		{
			name:     "validation error is permanent",
			status:   http.StatusUnprocessableEntity,
			message:  "Invalid `to` field",
			wantCode: domainerror.ErrCodePermanentEmailFailure,
			wantErr:  domainerror.ErrPermanentEmailFailure,
		},
		{
			name:     "server error is temporary",
			status:   http.StatusInternalServerError,
			message:  "Internal server error",
			wantCode: domainerror.ErrCodeTemporaryEmailFailure,
			wantErr:  domainerror.ErrTemporaryEmailFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newResendServer(t, tt.status, map[string]any{
				"statusCode": tt.status,
				"message":    tt.message,
				"name":       "error",
			}, nil)

			client, err := NewResendClient("re_test", "DDU Connect", "noreply@ddu.edu.et", WithBaseURL(srv.URL))
			require.NoError(t, err)

			_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "abebe@ddu.edu.et", Subject: "s", Text: "t"})
			require.Error(t, err)

			var emailErr *domainerror.EmailError
			require.ErrorAs(t, err, &emailErr)
			assert.Equal(t, tt.wantCode, emailErr.Code)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithBaseURL_Invalid(t *testing.T) {
	_, err := NewResendClient("re_test", "", "noreply@ddu.edu.et", WithBaseURL("://bad"))
	assert.Error(t, err)
}
