package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

type OrderStatus string

const (
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusFailed    OrderStatus = "FAILED"
)

// Order records one fulfilled purchase. It is created only after the stock
// reservation committed and is immutable once CONFIRMED.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId"`
	ProductID  string      `json:"productId"`
	Quantity   int         `json:"quantity"`
	Status     OrderStatus `json:"status"`
	Timestamp  int64       `json:"timestamp"`
}

func NewOrder(customerID, productID string, quantity int) Order {
	return Order{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		Status:     StatusConfirmed,
		Timestamp:  time.Now().UnixMilli(),
	}
}
