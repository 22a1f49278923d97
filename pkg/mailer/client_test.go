package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/promopace/promopace-backend/pkg/config"
)

func testMailerConfig(baseURL string) config.MailerConfig {
	return config.MailerConfig{
		BaseURL:     baseURL,
		APIKey:      "mk_test_123",
		FromAddress: "promos@promopace.io",
		FromName:    "PromoPace",
		Timeout:     2 * time.Second,
	}
}

func TestClientSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, sendPath, r.URL.Path)
		require.Equal(t, "Bearer mk_test_123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(sendResponse{ID: "msg_1"})
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), testMailerConfig(srv.URL), nil)
	require.NoError(t, err)

	err = client.Send(context.Background(), Message{
		To:       "rep@example.com",
		Subject:  "New promo assigned",
		HTMLBody: "<p>hello</p>",
	})
	require.NoError(t, err)
	require.Equal(t, "promos@promopace.io", got.From.Email)
	require.Len(t, got.To, 1)
	require.Equal(t, "rep@example.com", got.To[0].Email)
}

func TestClientSendNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), testMailerConfig(srv.URL), nil)
	require.NoError(t, err)

	err = client.Send(context.Background(), Message{To: "rep@example.com", Subject: "x"})
	require.Error(t, err)
}

func TestClientSendValidatesRecipient(t *testing.T) {
	client, err := NewClient(context.Background(), testMailerConfig("https://mail.invalid"), nil)
	require.NoError(t, err)

	require.Error(t, client.Send(context.Background(), Message{Subject: "x"}))
	require.Error(t, client.Send(context.Background(), Message{To: "rep@example.com"}))
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(context.Background(), config.MailerConfig{}, nil)
	require.Error(t, err)

	cfg := testMailerConfig("https://mail.invalid")
	cfg.APIKey = ""
	_, err = NewClient(context.Background(), cfg, nil)
	require.Error(t, err)
}
