package domain

import (
	"fmt"
	"time"
)

const OrderCollection = "orders"

type OrderStatus string

const (
	OrderPending     OrderStatus = "pending"
	OrderUnconfirmed OrderStatus = "unconfirmed"
	OrderConfirmed   OrderStatus = "confirmed"
	OrderProcessing  OrderStatus = "processing"
	OrderShipped     OrderStatus = "shipped"
	OrderDelivered   OrderStatus = "delivered"
	OrderCompleted   OrderStatus = "completed"
	OrderCancelled   OrderStatus = "cancelled"
	OrderRefunded    OrderStatus = "refunded"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderUnconfirmed, OrderConfirmed, OrderProcessing,
		OrderShipped, OrderDelivered, OrderCompleted, OrderCancelled, OrderRefunded:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
	}
}

func (s OrderStatus) AwaitingReview() bool {
	return s == OrderPending || s == OrderUnconfirmed
}

type OrderType string

const (
	OrderTypeOnline OrderType = "online"
	OrderTypeManual OrderType = "manual"
)

func ParseOrderType(s string) (OrderType, error) {
	switch t := OrderType(s); t {
	case OrderTypeOnline, OrderTypeManual:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderType, s)
	}
}

type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Total         float64     `json:"total"`
	Currency      string      `json:"currency,omitempty"`
	Status        OrderStatus `json:"status"`
	OrderType     OrderType   `json:"orderType"`
	UpdatedBy     string      `json:"updatedBy,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type CreateOrderInput struct {
	OrderNumber   string  `json:"orderNumber"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	OrderType     string  `json:"orderType"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

type OrderStatusEvent struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	ActorID string `json:"actorId"`
}
