package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	t.Run("posts the message as a one-element batch", func(t *testing.T) {
		var got []Message
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[{"status":"ok"}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		err := c.Send(context.Background(), Message{
			To:    "ExponentPushToken[abc]",
			Title: "Deadline approaching",
			Body:  "Riverside Plaza: 5 days left",
		})
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, "ExponentPushToken[abc]", got[0].To)
		assert.Equal(t, "Deadline approaching", got[0].Title)
	})

	t.Run("sends the access token as a bearer header when set", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"data":[{"status":"ok"}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "secret-token")
		require.NoError(t, c.Send(context.Background(), Message{To: "tok"}))
	})

	t.Run("reports non-200 responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		err := c.Send(context.Background(), Message{To: "tok"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("error tickets do not fail the batch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"status":"error","message":"DeviceNotRegistered"}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		assert.NoError(t, c.Send(context.Background(), Message{To: "dead-token"}))
	})
}

func TestClientSendBatch(t *testing.T) {
	t.Run("empty batch is a no-op", func(t *testing.T) {
		c := NewClient("http://expo.invalid", "")
		assert.NoError(t, c.SendBatch(context.Background(), nil))
	})

	t.Run("rejects batches over the cap", func(t *testing.T) {
		c := NewClient("http://expo.invalid", "")
		msgs := make([]Message, 101)
		err := c.SendBatch(context.Background(), msgs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "100")
	})
}
