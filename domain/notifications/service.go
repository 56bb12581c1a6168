package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	"github.com/schoolpilot/waitlist-api/internal/models"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
)

type NotificationService interface {
	// Subscribe adds an email to the launch notification list.
	Subscribe(ctx context.Context, email string) error

	// GetAllSubscribers retrieves all subscribers, newest first.
	GetAllSubscribers(ctx context.Context) ([]SubscriberResponse, error)

	// CountSubscribers returns the number of subscribers.
	CountSubscribers(ctx context.Context) (int64, error)

	// Broadcast hands the message to the delivery provider and appends a
	// SentNotification audit row with the recipient count.
	Broadcast(ctx context.Context, req *BroadcastRequest) (*BroadcastResponse, error)
}

type notificationService struct {
	logger     *log.Logger
	repository NotificationRepository
	delivery   DeliveryProvider
	bus        *events.Bus
}

func NewNotificationService(logger *log.Logger, repository NotificationRepository, delivery DeliveryProvider, bus *events.Bus) NotificationService {
	if delivery == nil {
		delivery = NewLogProvider(logger)
	}
	return &notificationService{
		logger:     logger,
		repository: repository,
		delivery:   delivery,
		bus:        bus,
	}
}

func (s *notificationService) Subscribe(ctx context.Context, email string) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.NewInvalidRequestError("please provide a valid email address", nil)
	}

	if _, err := s.repository.CreateSubscriber(ctx, &models.NotificationSubscriber{Email: email}); err != nil {
		if apperrors.GetErrorType(err) != apperrors.ErrorTypeConflict {
			logger.Error("Failed to create notification subscriber", "error", err)
		}
		return err
	}

	if s.bus != nil {
		s.bus.Publish(events.SubscribersChanged)
	}

	return nil
}

func (s *notificationService) GetAllSubscribers(ctx context.Context) ([]SubscriberResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	subscribers, err := s.repository.GetAllSubscribers(ctx)
	if err != nil {
		logger.Error("Failed to get notification subscribers", "error", err)
		return nil, err
	}

	responses := make([]SubscriberResponse, 0, len(subscribers))
	for _, subscriber := range subscribers {
		responses = append(responses, ToSubscriberResponse(subscriber))
	}

	return responses, nil
}

func (s *notificationService) CountSubscribers(ctx context.Context) (int64, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	count, err := s.repository.CountSubscribers(ctx)
	if err != nil {
		logger.Error("Failed to count notification subscribers", "error", err)
		return 0, err
	}

	return count, nil
}

func (s *notificationService) Broadcast(ctx context.Context, req *BroadcastRequest) (*BroadcastResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil || strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewInvalidRequestError("please provide a message", nil)
	}

	subscribers, err := s.repository.GetAllSubscribers(ctx)
	if err != nil {
		logger.Error("Failed to load subscribers for broadcast", "error", err)
		return nil, err
	}

	recipients := make([]string, 0, len(subscribers))
	for _, subscriber := range subscribers {
		recipients = append(recipients, subscriber.Email)
	}

	if _, err := s.delivery.Deliver(ctx, req.Message, recipients); err != nil {
		logger.Error("Broadcast delivery failed", "error", err)
		return nil, err
	}

	record := &models.SentNotification{
		Message:         req.Message,
		RecipientsCount: len(recipients),
		SentAt:          time.Now(),
	}

	if err := s.repository.CreateSentNotification(ctx, record); err != nil {
		logger.Error("Failed to record sent notification", "error", err)
		return nil, err
	}

	logger.Info("Broadcast recorded", "recipients", len(recipients))

	return &BroadcastResponse{
		RecipientsCount: len(recipients),
		Result:          fmt.Sprintf("Notification sent to %d subscribers", len(recipients)),
	}, nil
}
