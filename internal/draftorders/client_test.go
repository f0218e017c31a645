package draftorders

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

func newTestClient(t *testing.T, serverURL string) *Client {
	client, err := NewClient(serverURL, time.Second, creds.NewStaticCredentials("backend-token"))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		credentials creds.CredentialProvider
		wantErr     bool
	}{
		{"Valid", "http://localhost:9090", creds.NewStaticCredentials("token"), false},
		{"EmptyBaseURL", "", creds.NewStaticCredentials("token"), true},
		{"NilCredentials", "http://localhost:9090", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, 0, tt.credentials)
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

func TestClient_GetDraftOrder(t *testing.T) {
	draft := datagenerators.GenerateDraftOrder()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/draft_orders/get/"+draft.ID, r.URL.Path)
		assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": draft})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	got, err := client.GetDraftOrder(context.Background(), draft.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft, *got)
}

func TestClient_GetDraftOrder_EmptyID(t *testing.T) {
	client := newTestClient(t, "http://localhost:9090")

	_, err := client.GetDraftOrder(context.Background(), "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "draft order id cannot be empty")
}

func TestClient_GetDraftOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "draft order not found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetDraftOrder(context.Background(), "missing-id")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing-id", notFound.DraftID)
}

func TestClient_GetDraftOrder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "backend is down"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetDraftOrder(context.Background(), "some-id")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend is down")
}

func TestClient_ListDraftOrders(t *testing.T) {
	drafts := []models.DraftOrder{
		datagenerators.GenerateDraftOrder(),
		datagenerators.GenerateDraftOrder(),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/draft_orders", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page_no"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": drafts})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	got, err := client.ListDraftOrders(context.Background(), 20, 1)

	require.NoError(t, err)
	assert.Equal(t, drafts, got)
}

func TestClient_CreateDraftOrder(t *testing.T) {
	draft := datagenerators.GenerateDraftOrder()
	draft.ID = ""

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/draft_orders/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received models.DraftOrder
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)

		// Сервер присваивает идентификатор
		received.ID = "assigned-id"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": received})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	created, err := client.CreateDraftOrder(context.Background(), draft)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "assigned-id", created.ID)
}

func TestClient_CreateDraftOrder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "invalid draft order"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateDraftOrder(context.Background(), models.DraftOrder{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid draft order")
}
