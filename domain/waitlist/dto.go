package waitlist

import (
	"github.com/schoolpilot/waitlist-api/internal/models"
	"github.com/schoolpilot/waitlist-api/pkg/constants"
)

type JoinWaitlistRequest struct {
	SchoolName  string `json:"school_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,max=255"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=32"`
}

type WaitlistEntryResponse struct {
	ID          uint   `json:"id"`
	SchoolName  string `json:"school_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Discount    int    `json:"discount"`
	CreatedAt   string `json:"created_at"`
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryModel(req *JoinWaitlistRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		SchoolName:  req.SchoolName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Discount:    models.DefaultLaunchDiscount,
	}
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		ID:          entry.ID,
		SchoolName:  entry.SchoolName,
		Email:       entry.Email,
		PhoneNumber: entry.PhoneNumber,
		Discount:    entry.Discount,
		CreatedAt:   entry.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
