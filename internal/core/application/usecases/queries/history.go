package queries

import (
	"context"
	"math"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// HistoryEntry is one completed order together with its delivery latencies.
// Durations are minutes rounded to two decimal places.
type HistoryEntry struct {
	Order             OrderResponse
	AssignmentMinutes float64
	DeliveryMinutes   float64
	TotalMinutes      float64
}

// HistoryStats aggregates total latency over every completed order the
// filter matched, not only the returned page.
type HistoryStats struct {
	Count        int64
	TotalMinutes float64
	AvgMinutes   float64
	MinMinutes   float64
	MaxMinutes   float64
}

// HistoryResponse is one page of delivery history with its aggregates.
type HistoryResponse struct {
	Entries []HistoryEntry
	Stats   HistoryStats
	Page    PageInfo
}

// roundMinutes converts a duration to minutes with two decimal places.
func roundMinutes(d time.Duration) float64 {
	return math.Round(d.Minutes()*100) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// historyBounds converts an inclusive calendar range into completed_at
// bounds. The end date is extended to cover its whole day.
func historyBounds(from, to *time.Time) (*time.Time, *time.Time) {
	var lower, upper *time.Time
	if from != nil {
		t := from.UTC()
		lower = &t
	}
	if to != nil {
		t := to.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		upper = &t
	}
	return lower, upper
}

// queryHistory runs the shared completed-order history projection filtered
// by the given actor column.
func queryHistory(
	ctx context.Context,
	db *gorm.DB,
	actorColumn string,
	actorID kernel.UUID,
	from, to *time.Time,
	limit, skip int,
) (HistoryResponse, error) {
	where := actorColumn + " = ? AND status = ?"
	args := []any{actorID.Bytes(), order.Completed.String()}

	lower, upper := historyBounds(from, to)
	if lower != nil {
		where += " AND completed_at >= ?"
		args = append(args, *lower)
	}
	if upper != nil {
		where += " AND completed_at < ?"
		args = append(args, *upper)
	}

	var agg struct {
		Count int64
		Total float64
		Avg   float64
		Min   float64
		Max   float64
	}
	err := db.WithContext(ctx).Raw(`
		SELECT
			count(*) AS count,
			coalesce(sum(extract(epoch FROM (completed_at - created_at)) / 60), 0) AS total,
			coalesce(avg(extract(epoch FROM (completed_at - created_at)) / 60), 0) AS avg,
			coalesce(min(extract(epoch FROM (completed_at - created_at)) / 60), 0) AS min,
			coalesce(max(extract(epoch FROM (completed_at - created_at)) / 60), 0) AS max
		FROM orders
		WHERE `+where, args...).Scan(&agg).Error
	if err != nil {
		return HistoryResponse{}, err
	}

	args = append(args, limit, skip)
	rows, err := db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+where+`
		ORDER BY completed_at DESC
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return HistoryResponse{}, err
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		resp, scanErr := scanOrderResponse(rows)
		if scanErr != nil {
			return HistoryResponse{}, scanErr
		}

		entry := HistoryEntry{Order: resp}
		if resp.AssignedAt != nil {
			entry.AssignmentMinutes = roundMinutes(resp.AssignedAt.Sub(resp.CreatedAt))
		}
		if resp.CompletedAt != nil {
			if resp.AssignedAt != nil {
				entry.DeliveryMinutes = roundMinutes(resp.CompletedAt.Sub(*resp.AssignedAt))
			}
			entry.TotalMinutes = roundMinutes(resp.CompletedAt.Sub(resp.CreatedAt))
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return HistoryResponse{}, err
	}

	return HistoryResponse{
		Entries: entries,
		Stats: HistoryStats{
			Count:        agg.Count,
			TotalMinutes: round2(agg.Total),
			AvgMinutes:   round2(agg.Avg),
			MinMinutes:   round2(agg.Min),
			MaxMinutes:   round2(agg.Max),
		},
		Page: NewPageInfo(agg.Count, limit, skip),
	}, nil
}
