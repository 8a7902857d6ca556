package queries

import (
	"database/sql"
	"time"

	"broker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OrderResponse is the read-side projection of a delivery order. Contact
// snapshots are returned as captured at creation and claim time.
type OrderResponse struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	UserName     string
	UserPhone    string
	CourierID    *kernel.UUID
	CourierName  *string
	CourierPhone *string
	Status       string
	Notes        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AssignedAt   *time.Time
	CompletedAt  *time.Time
}

// orderColumns is the select list every order projection scans. Keep in sync
// with scanOrderResponse.
const orderColumns = `
	id,
	user_id,
	user_name,
	user_phone,
	courier_id,
	courier_name,
	courier_phone,
	status,
	notes,
	address,
	created_at,
	updated_at,
	assigned_at,
	completed_at
`

func scanOrderResponse(rows *sql.Rows) (OrderResponse, error) {
	var resp OrderResponse
	var id, userID uuid.UUID
	var courierID uuid.NullUUID
	var courierName, courierPhone sql.NullString
	var assignedAt, completedAt sql.NullTime

	err := rows.Scan(
		&id,
		&userID,
		&resp.UserName,
		&resp.UserPhone,
		&courierID,
		&courierName,
		&courierPhone,
		&resp.Status,
		&resp.Notes,
		&resp.Address,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&assignedAt,
		&completedAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	ownerID, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.UserID = ownerID

	if courierID.Valid {
		claimantID, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return OrderResponse{}, idErr
		}
		resp.CourierID = &claimantID
	}
	if courierName.Valid {
		resp.CourierName = &courierName.String
	}
	if courierPhone.Valid {
		resp.CourierPhone = &courierPhone.String
	}
	if assignedAt.Valid {
		at := assignedAt.Time
		resp.AssignedAt = &at
	}
	if completedAt.Valid {
		at := completedAt.Time
		resp.CompletedAt = &at
	}

	return resp, nil
}
