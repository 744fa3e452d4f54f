package service

import (
	"toystore-api/internal/dto"
	"toystore-api/internal/model"
)

// Shipment timeline shown to customers. Each milestone is completed once the
// order's status reaches its rank.
var milestones = []struct {
	key   string
	label string
	rank  int
}{
	{"placed", "Order Placed", 0},
	{"processing", "Processing", 1},
	{"accepted", "Accepted", 2},
	{"shipped", "Shipped", 3},
	{"delivered", "Delivered", 4},
}

// statusRank maps an order/item status to its position on the timeline.
// Unknown statuses rank as pending so the projection never fails.
func statusRank(status string) int {
	switch status {
	case model.OrderStatusProcessing:
		return 1
	case model.OrderStatusAccepted:
		return 2
	case model.OrderStatusShipped:
		return 3
	case model.OrderStatusDelivered:
		return 4
	default:
		return 0
	}
}

func buildTracking(orderNumber, status string) *dto.TrackingView {
	if status == model.OrderStatusCancelled {
		return &dto.TrackingView{
			OrderNumber: orderNumber,
			Status:      status,
			Cancelled:   true,
			Milestones: []dto.TrackingMilestone{
				{Key: "cancelled", Label: "Cancelled", Completed: true},
			},
		}
	}

	rank := statusRank(status)
	ms := make([]dto.TrackingMilestone, len(milestones))
	for i, m := range milestones {
		ms[i] = dto.TrackingMilestone{
			Key:       m.key,
			Label:     m.label,
			Completed: m.rank <= rank,
		}
	}

	return &dto.TrackingView{
		OrderNumber: orderNumber,
		Status:      status,
		Milestones:  ms,
	}
}
