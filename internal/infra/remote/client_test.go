package remote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aura/internal/domain/entity"
	domainerrors "aura/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := NewClient(serverURL, "test-api-key", 5*time.Second, newDiscardLogger())
	require.NoError(t, err)

	return client
}

func installSession(client *Client, userID uuid.UUID) {
	client.SetSession(&entity.Session{
		AccessToken:  "session-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
		UserID:       userID,
		Email:        "journal@example.com",
		Metadata:     map[string]string{},
	})
}

func TestNewClient_MissingBaseURL(t *testing.T) {
	_, err := NewClient("", "key", time.Second, newDiscardLogger())
	require.Error(t, err)
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient("https://aura.example.com", "  ", time.Second, newDiscardLogger())
	require.Error(t, err)
}

func TestClient_SessionHolder(t *testing.T) {
	client := newTestClient(t, "https://aura.example.com")

	assert.Nil(t, client.Session())

	userID := uuid.New()
	installSession(client, userID)
	require.NotNil(t, client.Session())
	assert.Equal(t, userID, client.Session().UserID)

	client.ClearSession()
	assert.Nil(t, client.Session())
}

func TestClient_AnonymousRequestsCarryAPIKeyBearer(t *testing.T) {
	var gotAuthorization, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var rows []struct{}
	require.NoError(t, client.selectRows(context.Background(), "diary_entries", nil, &rows))

	assert.Equal(t, "Bearer test-api-key", gotAuthorization)
	assert.Equal(t, "test-api-key", gotAPIKey)
}

func TestClient_SessionRequestsCarrySessionBearer(t *testing.T) {
	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	installSession(client, uuid.New())

	var rows []struct{}
	require.NoError(t, client.selectRows(context.Background(), "diary_entries", nil, &rows))

	assert.Equal(t, "Bearer session-token", gotAuthorization)
}

func TestClient_UnreachableServerIsNetworkError(t *testing.T) {
	// Reserved TEST-NET-1 address, nothing listens there.
	client, err := NewClient("http://192.0.2.1:1", "key", 200*time.Millisecond, newDiscardLogger())
	require.NoError(t, err)

	var rows []struct{}
	err = client.selectRows(context.Background(), "diary_entries", nil, &rows)

	require.Error(t, err)
	assert.Equal(t, domainerrors.KindNetworkUnavailable, domainerrors.KindOf(err))
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantKind   domainerrors.Kind
	}{
		{name: "unauthorized", statusCode: http.StatusUnauthorized, body: `{"msg":"JWT expired"}`, wantKind: domainerrors.KindUnauthorized},
		{name: "constraint violation", statusCode: http.StatusConflict, body: `{"message":"duplicate key"}`, wantKind: domainerrors.KindValidationRejected},
		{name: "server error", statusCode: http.StatusInternalServerError, body: ``, wantKind: domainerrors.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			var rows []struct{}
			err := client.selectRows(context.Background(), "diary_entries", nil, &rows)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domainerrors.KindOf(err))
		})
	}
}

func TestClient_UnknownResponseFieldsAreIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a","brand_new_field":true}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var rows []struct {
		ID string `json:"id"`
	}
	require.NoError(t, client.selectRows(context.Background(), "diary_entries", nil, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ID)
}

func TestClient_MalformedResponseIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var rows []struct{}
	err := client.selectRows(context.Background(), "diary_entries", nil, &rows)

	require.Error(t, err)
	assert.Equal(t, domainerrors.KindDecodeFailed, domainerrors.KindOf(err))
}
