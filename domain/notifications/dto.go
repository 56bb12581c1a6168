package notifications

import (
	"github.com/schoolpilot/waitlist-api/internal/models"
	"github.com/schoolpilot/waitlist-api/pkg/constants"
)

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,max=255"`
}

type SubscriberResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type BroadcastRequest struct {
	Message string `json:"message" binding:"required"`
}

type BroadcastResponse struct {
	RecipientsCount int    `json:"recipients_count"`
	Result          string `json:"result"`
}

// ========================================
// Mappers
// ========================================

func ToSubscriberResponse(subscriber *models.NotificationSubscriber) SubscriberResponse {
	if subscriber == nil {
		return SubscriberResponse{}
	}
	return SubscriberResponse{
		ID:        subscriber.ID,
		Email:     subscriber.Email,
		CreatedAt: subscriber.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
