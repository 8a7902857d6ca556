package http

import (
	"time"

	"broker/internal/core/application/usecases/queries"
)

// Response payloads. Identifiers travel as opaque strings, timestamps as
// RFC3339, absent optional timestamps as null.

type orderPayload struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	UserName     string     `json:"user_name"`
	UserPhone    string     `json:"user_phone"`
	CourierID    *string    `json:"courier_id"`
	CourierName  *string    `json:"courier_name"`
	CourierPhone *string    `json:"courier_phone"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	Address      string     `json:"address"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	AssignedAt   *time.Time `json:"assigned_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

func toOrderPayload(resp queries.OrderResponse) orderPayload {
	payload := orderPayload{
		ID:           resp.ID.String(),
		UserID:       resp.UserID.String(),
		UserName:     resp.UserName,
		UserPhone:    resp.UserPhone,
		CourierName:  resp.CourierName,
		CourierPhone: resp.CourierPhone,
		Status:       resp.Status,
		Notes:        resp.Notes,
		Address:      resp.Address,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
		AssignedAt:   resp.AssignedAt,
		CompletedAt:  resp.CompletedAt,
	}
	if resp.CourierID != nil {
		courierID := resp.CourierID.String()
		payload.CourierID = &courierID
	}
	return payload
}

type ordersPagePayload struct {
	Orders []orderPayload   `json:"orders"`
	Page   queries.PageInfo `json:"page"`
}

func toOrdersPagePayload(resp queries.ListOrdersResponse) ordersPagePayload {
	orders := make([]orderPayload, len(resp.Orders))
	for i, orderResp := range resp.Orders {
		orders[i] = toOrderPayload(orderResp)
	}
	return ordersPagePayload{Orders: orders, Page: resp.Page}
}

type sessionPayload struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"`
}

type notificationPayload struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Payload   map[string]string `json:"payload"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
	ReadAt    *time.Time        `json:"read_at"`
}

type notificationsPagePayload struct {
	Notifications []notificationPayload `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Page          queries.PageInfo      `json:"page"`
}

func toNotificationsPagePayload(resp queries.ListNotificationsResponse) notificationsPagePayload {
	notifications := make([]notificationPayload, len(resp.Notifications))
	for i, notifResp := range resp.Notifications {
		notifications[i] = notificationPayload{
			ID:        notifResp.ID.String(),
			Type:      notifResp.Type,
			Title:     notifResp.Title,
			Body:      notifResp.Body,
			Payload:   notifResp.Payload,
			Read:      notifResp.Read,
			CreatedAt: notifResp.CreatedAt,
			ReadAt:    notifResp.ReadAt,
		}
	}
	return notificationsPagePayload{
		Notifications: notifications,
		UnreadCount:   resp.UnreadCount,
		Page:          resp.Page,
	}
}

type historyEntryPayload struct {
	Order             orderPayload `json:"order"`
	AssignmentMinutes float64      `json:"assignment_minutes"`
	DeliveryMinutes   float64      `json:"delivery_minutes"`
	TotalMinutes      float64      `json:"total_minutes"`
}

type historyStatsPayload struct {
	Count        int64   `json:"count"`
	TotalMinutes float64 `json:"total_minutes"`
	AvgMinutes   float64 `json:"avg_minutes"`
	MinMinutes   float64 `json:"min_minutes"`
	MaxMinutes   float64 `json:"max_minutes"`
}

type historyPagePayload struct {
	Entries []historyEntryPayload `json:"entries"`
	Stats   historyStatsPayload   `json:"stats"`
	Page    queries.PageInfo      `json:"page"`
}

func toHistoryPagePayload(resp queries.HistoryResponse) historyPagePayload {
	entries := make([]historyEntryPayload, len(resp.Entries))
	for i, entry := range resp.Entries {
		entries[i] = historyEntryPayload{
			Order:             toOrderPayload(entry.Order),
			AssignmentMinutes: entry.AssignmentMinutes,
			DeliveryMinutes:   entry.DeliveryMinutes,
			TotalMinutes:      entry.TotalMinutes,
		}
	}
	return historyPagePayload{
		Entries: entries,
		Stats: historyStatsPayload{
			Count:        resp.Stats.Count,
			TotalMinutes: resp.Stats.TotalMinutes,
			AvgMinutes:   resp.Stats.AvgMinutes,
			MinMinutes:   resp.Stats.MinMinutes,
			MaxMinutes:   resp.Stats.MaxMinutes,
		},
		Page: resp.Page,
	}
}

type orderReportPayload struct {
	Order             orderPayload `json:"order"`
	AssignmentMinutes *float64     `json:"assignment_minutes"`
	DeliveryMinutes   *float64     `json:"delivery_minutes"`
	TotalMinutes      *float64     `json:"total_minutes"`
}

func toOrderReportPayload(resp queries.OrderReportResponse) orderReportPayload {
	return orderReportPayload{
		Order:             toOrderPayload(resp.Order),
		AssignmentMinutes: resp.AssignmentMinutes,
		DeliveryMinutes:   resp.DeliveryMinutes,
		TotalMinutes:      resp.TotalMinutes,
	}
}
