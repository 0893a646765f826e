package domain

// OrderConfirmed is published to downstream consumers after an order is
// persisted. Delivery is best effort.
type OrderConfirmed struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	Timestamp  int64  `json:"timestamp"`
}
