package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orderflow/order-fulfillment/internal/order/application"
	"github.com/orderflow/order-fulfillment/pkg/tracing"
)

// InventoryClient calls the inventory service over HTTP. Every request runs
// under the client timeout so a hung dependency cannot stall an order.
type InventoryClient struct {
	log     *slog.Logger
	baseURL string
	client  *http.Client
}

func NewInventoryClient(log *slog.Logger, baseURL string, timeout time.Duration) *InventoryClient {
	return &InventoryClient{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *InventoryClient) CheckAvailability(ctx context.Context, productID string, quantity int) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/inventory/"+url.PathEscape(productID), nil)
	if err != nil {
		return false, err
	}
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var rec struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return false, err
		}
		return rec.Quantity >= quantity, nil
	case http.StatusNotFound:
		return false, application.ErrProductNotFound
	default:
		return false, fmt.Errorf("inventory check: unexpected status %d", resp.StatusCode)
	}
}

func (c *InventoryClient) Reserve(ctx context.Context, productID string, quantity int) error {
	body, err := json.Marshal(map[string]any{"productId": productID, "quantity": quantity})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/inventory/reserve", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		switch e.Error {
		case "Product not found":
			return application.ErrProductNotFound
		case "Insufficient stock":
			return application.ErrInsufficientStock
		default:
			return fmt.Errorf("inventory reserve rejected: %s", e.Error)
		}
	default:
		return fmt.Errorf("inventory reserve: unexpected status %d", resp.StatusCode)
	}
}
