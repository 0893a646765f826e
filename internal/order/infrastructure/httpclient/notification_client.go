package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/orderflow/order-fulfillment/internal/order/domain"
	"github.com/orderflow/order-fulfillment/pkg/tracing"
)

// NotificationClient posts order confirmations to the notification service.
// One attempt; the orchestrator treats any error as informational only.
type NotificationClient struct {
	log     *slog.Logger
	baseURL string
	client  *http.Client
}

func NewNotificationClient(log *slog.Logger, baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *NotificationClient) Notify(ctx context.Context, o domain.Order) error {
	body, err := json.Marshal(map[string]any{
		"orderId":    o.ID,
		"customerId": o.CustomerID,
		"productId":  o.ProductID,
		"quantity":   o.Quantity,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/notifications/order", bytes.NewReader(body))
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

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification: unexpected status %d", resp.StatusCode)
	}
	c.log.Info("notification delivered", "order_id", o.ID)
	return nil
}
