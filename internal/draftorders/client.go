package draftorders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lsp-search-service/internal/creds"
	"lsp-search-service/internal/models"
)

const defaultTimeout = 15 * time.Second

// NotFoundError — черновик с указанным идентификатором отсутствует на сервере.
type NotFoundError struct {
	DraftID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("draft order %s not found", e.DraftID)
}

// Client — HTTP-клиент удалённого хранилища черновиков заказов (Backend API).
// Хранилищем владеет удалённый сервис; клиент только читает и создаёт записи.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      creds.CredentialProvider
}

// NewClient создает новый клиент Backend API
func NewClient(baseURL string, timeout time.Duration, credentials creds.CredentialProvider) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if credentials == nil {
		return nil, fmt.Errorf("credential provider cannot be nil")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		creds:      credentials,
	}, nil
}

// GetDraftOrder запрашивает черновик по идентификатору.
// Ответ сервера вложен в поле data.
func (c *Client) GetDraftOrder(ctx context.Context, draftID string) (*models.DraftOrder, error) {
	if draftID == "" {
		return nil, fmt.Errorf("draft order id cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/draft_orders/get/%s", c.baseURL, url.PathEscape(draftID))
	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &NotFoundError{DraftID: draftID}
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("failed to get draft order: %s", serverMessage(body, status))
	}

	var wrapped struct {
		Data models.DraftOrder `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode draft order response: %w", err)
	}

	return &wrapped.Data, nil
}

// ListDraftOrders запрашивает страницу списка черновиков.
func (c *Client) ListDraftOrders(ctx context.Context, perPage, pageNo int) ([]models.DraftOrder, error) {
	endpoint := fmt.Sprintf("%s/draft_orders?per_page=%s&page_no=%s",
		c.baseURL, strconv.Itoa(perPage), strconv.Itoa(pageNo))

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("failed to list draft orders: %s", serverMessage(body, status))
	}

	var wrapped struct {
		Data []models.DraftOrder `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode draft orders response: %w", err)
	}

	return wrapped.Data, nil
}

// CreateDraftOrder создает черновик на сервере и возвращает запись
// с присвоенным идентификатором.
func (c *Client) CreateDraftOrder(ctx context.Context, draft models.DraftOrder) (*models.DraftOrder, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft order: %w", err)
	}

	endpoint := fmt.Sprintf("%s/draft_orders/create", c.baseURL)
	body, status, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("failed to create draft order: %s", serverMessage(body, status))
	}

	var wrapped struct {
		Data models.DraftOrder `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}

	return &wrapped.Data, nil
}

// do выполняет запрос с bearer-токеном и возвращает тело и статус ответа.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// serverMessage извлекает поле message из тела ошибки
func serverMessage(body []byte, status int) string {
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return errBody.Message
	}
	return fmt.Sprintf("unexpected status %d", status)
}
