package domain

import (
	"fmt"
	"time"
)

const (
	NotificationCollection = "notifications"

	RelatedTypeOrder = "order"
)

type Notification struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
	Priority       Priority         `json:"priority"`
	UserID         *string          `json:"userId"`
	IsRead         bool             `json:"isRead"`
	ReadAt         *time.Time       `json:"readAt,omitempty"`
	ReadBy         string           `json:"readBy,omitempty"`
	RequiresAction bool             `json:"requiresAction"`
	ActionLink     string           `json:"actionLink,omitempty"`
	ActionText     string           `json:"actionText,omitempty"`
	AutoMarkRead   bool             `json:"autoMarkRead"`
	RelatedID      string           `json:"relatedId,omitempty"`
	RelatedType    string           `json:"relatedType,omitempty"`
	Metadata       map[string]any   `json:"metadata"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	ExpiresAt      *time.Time       `json:"expiresAt,omitempty"`
}

func (n *Notification) IsGlobal() bool {
	return n.UserID == nil
}

func (n *Notification) VisibleTo(userID *string) bool {
	if n.UserID == nil {
		return true
	}
	return userID != nil && *n.UserID == *userID
}

func (n *Notification) MetadataString(key string) (string, bool) {
	if n.Metadata == nil {
		return "", false
	}
	v, ok := n.Metadata[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v), true
	}
	return s, true
}

func (n *Notification) HasMetadata(key string) bool {
	if n.Metadata == nil {
		return false
	}
	v, ok := n.Metadata[key]
	return ok && v != nil
}

type NotificationType string

const (
	NotifOrder       NotificationType = "order"
	NotifSecurity    NotificationType = "security"
	NotifReport      NotificationType = "report"
	NotifMaintenance NotificationType = "maintenance"
	NotifInfo        NotificationType = "info"
	NotifWarning     NotificationType = "warning"
	NotifError       NotificationType = "error"
)

var notificationTypes = map[NotificationType]struct{}{
	NotifOrder:       {},
	NotifSecurity:    {},
	NotifReport:      {},
	NotifMaintenance: {},
	NotifInfo:        {},
	NotifWarning:     {},
	NotifError:       {},
}

func ParseNotificationType(s string) (NotificationType, error) {
	if s == "" {
		return NotifInfo, nil
	}
	t := NotificationType(s)
	if _, ok := notificationTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidNotificationType, s)
	}
	return t, nil
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

type NotificationInput struct {
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Type           string         `json:"type"`
	Priority       string         `json:"priority"`
	UserID         *string        `json:"userId"`
	RequiresAction bool           `json:"requiresAction"`
	ActionLink     string         `json:"actionLink"`
	ActionText     string         `json:"actionText"`
	AutoMarkRead   bool           `json:"autoMarkRead"`
	RelatedID      string         `json:"relatedId"`
	RelatedType    string         `json:"relatedType"`
	Metadata       map[string]any `json:"metadata"`
	ExpiresAt      *time.Time     `json:"expiresAt"`
}

type OrderNotificationInput struct {
	OrderID       string  `json:"orderId"`
	OrderNumber   string  `json:"orderNumber"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	OrderType     string  `json:"orderType"`
}

type SystemNotificationInput struct {
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Type           string         `json:"type"`
	Priority       string         `json:"priority"`
	UserID         *string        `json:"userId"`
	RequiresAction bool           `json:"requiresAction"`
	ActionLink     string         `json:"actionLink"`
	ActionText     string         `json:"actionText"`
	AutoMarkRead   *bool          `json:"autoMarkRead"`
	RelatedID      string         `json:"relatedId"`
	RelatedType    string         `json:"relatedType"`
	Metadata       map[string]any `json:"metadata"`
	ExpiresAt      *time.Time     `json:"expiresAt"`
}

type UpdateNotificationInput struct {
	Title      *string        `json:"title,omitempty"`
	Message    *string        `json:"message,omitempty"`
	Priority   *string        `json:"priority,omitempty"`
	ActionLink *string        `json:"actionLink,omitempty"`
	ActionText *string        `json:"actionText,omitempty"`
	ExpiresAt  NullableTime   `json:"expiresAt"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NotificationQuery filters the notification collection. UserID left unset
// skips the user filter. Set to a user it matches that user's notifications
// plus global ones; set to null it matches global ones only.
type NotificationQuery struct {
	UserID     NullableString
	UnreadOnly bool
	Type       NotificationType
	Limit      int
}

func ForUser(userID string) NullableString {
	return NullableString{Value: &userID, Set: true}
}

type BatchItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BatchReadResult struct {
	SuccessCount int               `json:"successCount"`
	FailureCount int               `json:"failureCount"`
	Results      []BatchItemResult `json:"results"`
}

type AutoClearResult struct {
	Marked int              `json:"marked"`
	Reason string           `json:"reason,omitempty"`
	Batch  *BatchReadResult `json:"batch,omitempty"`
}

type SystemCount struct {
	Count     int                      `json:"count"`
	Breakdown map[NotificationType]int `json:"breakdown"`
}

type NavigationCounts struct {
	StoreOrders int         `json:"storeOrders"`
	System      SystemCount `json:"system"`
	Marketing   int         `json:"marketing"`
	Total       int         `json:"total"`
}

type SweepResult struct {
	Scanned   int `json:"scanned"`
	Deleted   int `json:"deleted"`
	Expired   int `json:"expired"`
	Retention int `json:"retention"`
	Failed    int `json:"failed"`
}
