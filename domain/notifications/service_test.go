package notifications

import (
	"context"
	"testing"

	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	"github.com/schoolpilot/waitlist-api/internal/models"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNotificationService_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockNotificationRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()

	t.Run("successful subscribe publishes change event", func(t *testing.T) {
		bus := events.NewBus()
		changed := 0
		bus.Subscribe(events.SubscribersChanged, func(string) { changed++ })

		service := NewNotificationService(logger, mockRepo, nil, bus)

		mockRepo.EXPECT().
			CreateSubscriber(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, subscriber *models.NotificationSubscriber) (*models.NotificationSubscriber, error) {
				assert.Equal(t, "a@b.com", subscriber.Email)
				return subscriber, nil
			})

		err := service.Subscribe(context.Background(), "a@b.com")

		assert.NoError(t, err)
		assert.Equal(t, 1, changed)
	})

	t.Run("empty email rejected without insert", func(t *testing.T) {
		service := NewNotificationService(logger, mockRepo, nil, nil)

		err := service.Subscribe(context.Background(), "")

		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("email without at-sign rejected without insert", func(t *testing.T) {
		service := NewNotificationService(logger, mockRepo, nil, nil)

		err := service.Subscribe(context.Background(), "not-an-email")

		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		service := NewNotificationService(logger, mockRepo, nil, nil)

		mockRepo.EXPECT().
			CreateSubscriber(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewConflictError("this email is already subscribed for notifications", nil))

		err := service.Subscribe(context.Background(), "a@b.com")

		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})
}

func TestNotificationService_Broadcast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockNotificationRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewNotificationService(logger, mockRepo, nil, nil)

	t.Run("blank message rejected without audit row", func(t *testing.T) {
		result, err := service.Broadcast(context.Background(), &BroadcastRequest{Message: "   "})

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("records recipient count and returns it in the result", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAllSubscribers(gomock.Any()).
			Return([]*models.NotificationSubscriber{
				{Email: "one@example.com"},
				{Email: "two@example.com"},
				{Email: "three@example.com"},
			}, nil)

		mockRepo.EXPECT().
			CreateSentNotification(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *models.SentNotification) error {
				assert.Equal(t, "Hello", record.Message)
				assert.Equal(t, 3, record.RecipientsCount)
				assert.False(t, record.SentAt.IsZero())
				return nil
			})

		result, err := service.Broadcast(context.Background(), &BroadcastRequest{Message: "Hello"})

		assert.NoError(t, err)
		assert.Equal(t, 3, result.RecipientsCount)
		assert.Contains(t, result.Result, "3")
	})

	t.Run("subscriber fetch failure aborts without audit row", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAllSubscribers(gomock.Any()).
			Return(nil, apperrors.NewDatabaseError("database error", nil))

		result, err := service.Broadcast(context.Background(), &BroadcastRequest{Message: "Hello"})

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	})
}

func TestLogProvider_DeliverClaimsAllRecipients(t *testing.T) {
	provider := NewLogProvider(log.NewLoggerWithJSONOutput())

	result, err := provider.Deliver(context.Background(), "Hello", []string{"a@b.com", "c@d.com"})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Delivered)
}
