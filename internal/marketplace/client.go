package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lsp-search-service/internal/creds"
	"lsp-search-service/internal/models"
)

// defaultTimeout — таймаут запроса поиска. Эндпоинт маркетплейса — сторонний
// сервис, полагаться на дефолт транспорта нельзя.
const defaultTimeout = 15 * time.Second

// NetworkError — ошибка обращения к маркетплейсу. Несёт сообщение сервера,
// если оно было в теле ответа.
type NetworkError struct {
	Message    string
	StatusCode int
}

func (e *NetworkError) Error() string {
	return e.Message
}

// Client — клиент эндпоинта поиска логистического маркетплейса.
type Client struct {
	searchURL  string
	httpClient *http.Client
	creds      creds.CredentialProvider
}

// NewClient создает новый клиент маркетплейса. Нулевой timeout заменяется
// значением по умолчанию (15 секунд).
func NewClient(searchURL string, timeout time.Duration, credentials creds.CredentialProvider) (*Client, error) {
	if searchURL == "" {
		return nil, fmt.Errorf("search URL cannot be empty")
	}
	if credentials == nil {
		return nil, fmt.Errorf("credential provider cannot be nil")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		searchURL:  searchURL,
		httpClient: &http.Client{Timeout: timeout},
		creds:      credentials,
	}, nil
}

// Search выполняет один запрос поиска и возвращает список предложений
// провайдеров. Пустой список — валидный результат ("перевозчики не найдены").
// Повторных попыток нет: повтор — это новый поиск, запущенный пользователем.
func (c *Client) Search(ctx context.Context, request models.QuoteRequest) ([]models.Quote, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.creds.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Message: "search failed"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Message: "search failed", StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{
			Message:    serverMessage(respBody),
			StatusCode: resp.StatusCode,
		}
	}

	quotes, err := decodeQuotes(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return quotes, nil
}

// serverMessage извлекает поле message из тела ошибки; если его нет —
// возвращает общее сообщение.
func serverMessage(body []byte) string {
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return errBody.Message
	}
	return "search failed"
}

// decodeQuotes разбирает тело ответа: либо JSON-массив предложений,
// либо объект-обёртка {"data": [...]}.
func decodeQuotes(body []byte) ([]models.Quote, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []models.Quote{}, nil
	}

	if trimmed[0] == '[' {
		var quotes []models.Quote
		if err := json.Unmarshal(trimmed, &quotes); err != nil {
			return nil, err
		}
		return quotes, nil
	}

	var wrapped struct {
		Data []models.Quote `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Data == nil {
		return []models.Quote{}, nil
	}
	return wrapped.Data, nil
}
