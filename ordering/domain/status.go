package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownStatus = errors.New("unknown order status")

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusCooking        OrderStatus = "cooking"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

var displayNames = map[OrderStatus]string{
	StatusPending:        "Pending",
	StatusAccepted:       "Accepted",
	StatusCooking:        "In Cooking",
	StatusReady:          "Ready",
	StatusOutForDelivery: "Out for Delivery",
	StatusCompleted:      "Completed",
	StatusCancelled:      "Cancelled",
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

func (s OrderStatus) Valid() bool {
	_, ok := displayNames[s]
	return ok
}

// IsTerminal reports whether no further transitions are accepted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}
