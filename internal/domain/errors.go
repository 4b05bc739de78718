package domain

import "errors"

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationType = errors.New("invalid notification type")
	ErrInvalidPriority         = errors.New("invalid notification priority")
	ErrInvalidOrderStatus      = errors.New("invalid order status")
	ErrInvalidOrderType        = errors.New("invalid order type")
	ErrOrderNotFound           = errors.New("order not found")
	ErrSettingsNotFound        = errors.New("settings not found")
	ErrInvalidSettingsKey      = errors.New("invalid settings collection")
)
