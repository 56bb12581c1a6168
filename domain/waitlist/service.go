package waitlist

import (
	"context"
	"strings"

	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
)

// NotificationSignup is the slice of the notifications domain the waitlist
// needs: joining the waitlist also opts the school into launch notifications.
type NotificationSignup interface {
	Subscribe(ctx context.Context, email string) error
}

type WaitlistService interface {
	// JoinWaitlist validates and persists a waitlist signup, applying the
	// launch discount and best-effort subscribing the email to notifications.
	JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error)

	// GetAllEntries retrieves all waitlist entries, newest first.
	GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error)

	// CountEntries returns the number of schools on the waitlist.
	CountEntries(ctx context.Context) (int64, error)
}

type waitlistService struct {
	logger        *log.Logger
	repository    WaitlistRepository
	notifications NotificationSignup
	bus           *events.Bus
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, notifications NotificationSignup, bus *events.Bus) WaitlistService {
	return &waitlistService{
		logger:        logger,
		repository:    repository,
		notifications: notifications,
		bus:           bus,
	}
}

func (s *waitlistService) JoinWaitlist(ctx context.Context, req *JoinWaitlistRequest) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("JoinWaitlist received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	// Trim once here so the persisted email is the same key the notifications
	// store uses; padded variants must not slip past the unique index.
	req.SchoolName = strings.TrimSpace(req.SchoolName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if req.SchoolName == "" {
		return nil, apperrors.NewInvalidRequestError("please provide a school name", nil)
	}

	if !isPlausibleEmail(req.Email) {
		return nil, apperrors.NewInvalidRequestError("please provide a valid email address", nil)
	}

	entry, err := s.repository.CreateEntry(ctx, ToWaitlistEntryModel(req))
	if err != nil {
		logger.Error("Failed to create waitlist entry", "error", err)
		return nil, err
	}

	// Waitlist signups also get launch notifications. Already-subscribed (or
	// any other failure) must not undo a successful join.
	if s.notifications != nil {
		if err := s.notifications.Subscribe(ctx, entry.Email); err != nil {
			logger.Warn("Notification opt-in after waitlist join failed", "error", err)
		}
	}

	if s.bus != nil {
		s.bus.Publish(events.WaitlistChanged)
	}

	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to get all waitlist entries", "error", err)
		return nil, err
	}

	responses := make([]WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToWaitlistEntryResponse(entry))
	}

	return responses, nil
}

func (s *waitlistService) CountEntries(ctx context.Context) (int64, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	count, err := s.repository.CountEntries(ctx)
	if err != nil {
		logger.Error("Failed to count waitlist entries", "error", err)
		return 0, err
	}

	return count, nil
}

// isPlausibleEmail applies the signup form's check: non-empty and contains an
// "@". The store's unique index is the real gatekeeper.
func isPlausibleEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@")
}
