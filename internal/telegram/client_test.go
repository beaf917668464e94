package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RefundStarPayment(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{
			name:     "gateway confirms refund",
			response: `{"ok": true, "result": true}`,
			want:     true,
		},
		{
			name:     "gateway declines refund",
			response: `{"ok": false, "error_code": 400, "description": "CHARGE_NOT_FOUND"}`,
			want:     false,
		},
		{
			name:     "ok without result is not success",
			response: `{"ok": true, "result": false}`,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bottesttoken/refundStarPayment", r.URL.Path)

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, float64(42), body["user_id"])
				assert.Equal(t, "charge-1", body["telegram_payment_charge_id"])

				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "testtoken")
			got, err := client.RefundStarPayment(context.Background(), 42, "charge-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_SendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottesttoken/sendMessage", r.URL.Path)

		var req SendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(100), req.ChatID)
		assert.True(t, req.ProtectContent)

		_, _ = w.Write([]byte(`{"ok": true, "result": {"message_id": 7, "chat": {"id": 100}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testtoken")
	msg, err := client.SendMessage(context.Background(), SendMessageRequest{
		ChatID:         100,
		Text:           "Выберите пункт меню",
		ProtectContent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), msg.MessageID)
	assert.Equal(t, int64(100), msg.Chat.ID)
}

func TestClient_DeleteMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "description": "Bad Request: message to delete not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testtoken")
	err := client.DeleteMessage(context.Background(), 100, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message to delete not found")
}

func TestClient_GetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottesttoken/getUpdates", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok": true, "result": [
			{"update_id": 1, "message": {"message_id": 5, "chat": {"id": 9}, "text": "/start"}},
			{"update_id": 2, "pre_checkout_query": {"id": "q1", "from": {"id": 9}, "currency": "XTR", "total_amount": 4990, "invoice_payload": "corpus_subscription_year_v1"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testtoken")
	updates, err := client.GetUpdates(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "/start", updates[0].Message.Text)
	require.NotNil(t, updates[1].PreCheckoutQuery)
	assert.Equal(t, "corpus_subscription_year_v1", updates[1].PreCheckoutQuery.InvoicePayload)
}
