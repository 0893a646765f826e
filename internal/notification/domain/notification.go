package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("notification not found")

type NotificationStatus string

const (
	StatusSent   NotificationStatus = "SENT"
	StatusFailed NotificationStatus = "FAILED"
)

// NotificationRecord is one confirmation message for one order. Its lifecycle
// is owned by the notification service; a failure here never rolls back the
// order that triggered it.
type NotificationRecord struct {
	ID         string             `json:"id"`
	OrderID    string             `json:"orderId"`
	CustomerID string             `json:"customerId"`
	Message    string             `json:"message"`
	Timestamp  int64              `json:"timestamp"`
	Status     NotificationStatus `json:"status"`
}

func NewConfirmation(orderID, customerID, productID string, quantity int) NotificationRecord {
	return NotificationRecord{
		OrderID:    orderID,
		CustomerID: customerID,
		Message:    fmt.Sprintf("Order %s confirmed! Product: %s, Quantity: %d", orderID, productID, quantity),
		Timestamp:  time.Now().UnixMilli(),
		Status:     StatusSent,
	}
}
