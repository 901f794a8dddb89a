package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/pkg/metrics"
)

// Проверка, что Client удовлетворяет интерфейсу CatalogClient.
var _ ports.CatalogClient = (*Client)(nil)

// Client — HTTP-клиент удалённого каталога (dummyjson-совместимый API).
// Намеренно без кэша и ретраев: политика отказоустойчивости живёт в page source.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient — конструктор. timeout <= 0 означает дефолтные 10 секунд.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FetchPage — GET /products?limit=&skip=.
func (c *Client) FetchPage(ctx context.Context, limit, skip int) (*domain.RemotePage, error) {
	url := fmt.Sprintf("%s/products?limit=%d&skip=%d", c.baseURL, limit, skip)

	var dto pageDTO
	if err := c.getJSON(ctx, url, &dto); err != nil {
		metrics.RemoteRequests.WithLabelValues("page", outcomeLabel(err)).Inc()
		return nil, err
	}

	metrics.RemoteRequests.WithLabelValues("page", "ok").Inc()
	return dto.toDomain(), nil
}

// FetchByID — GET /products/{id}; 404 → domain.ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id int) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)

	var dto productDTO
	if err := c.getJSON(ctx, url, &dto); err != nil {
		metrics.RemoteRequests.WithLabelValues("by_id", outcomeLabel(err)).Inc()
		return nil, err
	}

	metrics.RemoteRequests.WithLabelValues("by_id", "ok").Inc()
	p := dto.toDomain()
	return &p, nil
}

// getJSON — один GET с классификацией ошибок по таксономии domain.
func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrRemote, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Транспортный сбой (нет связи, таймаут, отменённый контекст).
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: unexpected status %d from %s", domain.ErrRemote, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode body: %v", domain.ErrRemote, err)
	}
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	default:
		return "remote"
	}
}
