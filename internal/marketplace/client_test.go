package marketplace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lsp-search-service/internal/creds"
	"lsp-search-service/internal/datagenerators"
	"lsp-search-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient создаёт клиент, указывающий на тестовый сервер
func newTestClient(t *testing.T, serverURL string) *Client {
	client, err := NewClient(serverURL, time.Second, creds.NewStaticCredentials("test-token"))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		searchURL   string
		credentials creds.CredentialProvider
		wantErr     bool
	}{
		{"Valid", "http://localhost:9090/logistics/search", creds.NewStaticCredentials("token"), false},
		{"EmptyURL", "", creds.NewStaticCredentials("token"), true},
		{"NilCredentials", "http://localhost:9090/logistics/search", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.searchURL, 0, tt.credentials)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestNewClient_ZeroTimeoutUsesDefault(t *testing.T) {
	client, err := NewClient("http://localhost:9090/logistics/search", 0, creds.NewStaticCredentials(""))
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestClient_Search_BareArrayResponse(t *testing.T) {
	expected := datagenerators.GenerateQuotes(3)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var request models.QuoteRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(expected)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	quotes, err := client.Search(context.Background(), models.QuoteRequest{})

	require.NoError(t, err)
	assert.Equal(t, expected, quotes)
}

func TestClient_Search_WrappedResponse(t *testing.T) {
	expected := datagenerators.GenerateQuotes(2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": expected})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	quotes, err := client.Search(context.Background(), models.QuoteRequest{})

	require.NoError(t, err)
	assert.Equal(t, expected, quotes)
}

func TestClient_Search_EmptyListIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	quotes, err := client.Search(context.Background(), models.QuoteRequest{})

	require.NoError(t, err)
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

func TestClient_Search_ServerErrorWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message": "provider timeout"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	quotes, err := client.Search(context.Background(), models.QuoteRequest{})

	require.Error(t, err)
	assert.Nil(t, quotes)

	// Сообщение сервера поднимается как есть
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "provider timeout", netErr.Message)
	assert.Equal(t, http.StatusBadGateway, netErr.StatusCode)
}

func TestClient_Search_ServerErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Search(context.Background(), models.QuoteRequest{})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "search failed", netErr.Message)
}

func TestClient_Search_TransportError(t *testing.T) {
	// Сервер закрывается до запроса: транспортная ошибка без статуса
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Search(context.Background(), models.QuoteRequest{})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "search failed", netErr.Message)
	assert.Equal(t, 0, netErr.StatusCode)
}

func TestClient_Search_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(datagenerators.GenerateMalformedJSON_ReturnsBytes())
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Search(context.Background(), models.QuoteRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode search response")
}

func TestClient_Search_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second, creds.NewStaticCredentials(""))
	require.NoError(t, err)

	_, err = client.Search(context.Background(), models.QuoteRequest{})
	assert.NoError(t, err)
}

func TestClient_Search_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, models.QuoteRequest{})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "search failed", netErr.Message)
}
