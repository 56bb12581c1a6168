package waitlist

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

type signupRecorder struct {
	emails []string
	err    error
}

func (r *signupRecorder) Subscribe(_ context.Context, email string) error {
	r.emails = append(r.emails, email)
	return r.err
}

func TestWaitlistService_JoinWaitlist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()

	t.Run("successful join applies discount and subscribes email", func(t *testing.T) {
		signups := &signupRecorder{}
		bus := events.NewBus()
		changed := 0
		bus.Subscribe(events.WaitlistChanged, func(string) { changed++ })

		service := NewWaitlistService(logger, mockRepo, signups, bus)

		req := &JoinWaitlistRequest{
			SchoolName: "Springfield Elementary",
			Email:      "a@b.com",
		}

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
				assert.Equal(t, models.DefaultLaunchDiscount, entry.Discount)
				return entry, nil
			})

		result, err := service.JoinWaitlist(context.Background(), req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "Springfield Elementary", result.SchoolName)
		assert.Equal(t, 50, result.Discount)
		assert.Equal(t, []string{"a@b.com"}, signups.emails)
		assert.Equal(t, 1, changed)
	})

	t.Run("padded fields are trimmed before persisting and subscribing", func(t *testing.T) {
		signups := &signupRecorder{}
		service := NewWaitlistService(logger, mockRepo, signups, nil)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
				assert.Equal(t, "Springfield Elementary", entry.SchoolName)
				assert.Equal(t, "a@b.com", entry.Email)
				assert.Equal(t, "+15551234567", entry.PhoneNumber)
				return entry, nil
			})

		result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
			SchoolName:  "  Springfield Elementary  ",
			Email:       " a@b.com ",
			PhoneNumber: " +15551234567 ",
		})

		assert.NoError(t, err)
		assert.Equal(t, "a@b.com", result.Email)
		assert.Equal(t, []string{"a@b.com"}, signups.emails)
	})

	t.Run("blank school name rejected without insert", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, &signupRecorder{}, nil)

		result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
			SchoolName: "   ",
			Email:      "a@b.com",
		})

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("email without at-sign rejected without insert", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, &signupRecorder{}, nil)

		result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
			SchoolName: "Springfield Elementary",
			Email:      "not-an-email",
		})

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, &signupRecorder{}, nil)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewConflictError("this school is already on our waitlist", nil))

		result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
			SchoolName: "Springfield Elementary",
			Email:      "a@b.com",
		})

		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
	})

	t.Run("failed notification opt-in does not fail the join", func(t *testing.T) {
		signups := &signupRecorder{err: apperrors.NewConflictError("already subscribed", nil)}
		service := NewWaitlistService(logger, mockRepo, signups, nil)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
				return entry, nil
			})

		result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
			SchoolName: "Springfield Elementary",
			Email:      "a@b.com",
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("repository error", func(t *testing.T) {
		service := NewWaitlistService(logger, mockRepo, &signupRecorder{}, nil)

		mockRepo.EXPECT().
			CreateEntry(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewDatabaseError("database error", nil))

		result, err := service.JoinWaitlist(context.Background(), &JoinWaitlistRequest{
			SchoolName: "Springfield Elementary",
			Email:      "a@b.com",
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	})
}

func TestWaitlistService_GetAllEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockWaitlistRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewWaitlistService(logger, mockRepo, nil, nil)

	t.Run("maps entries to responses", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAllEntries(gomock.Any()).
			Return([]*models.WaitlistEntry{
				{SchoolName: "Shelbyville High", Email: "admin@shelbyville.edu", Discount: 50},
			}, nil)

		result, err := service.GetAllEntries(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "Shelbyville High", result[0].SchoolName)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAllEntries(gomock.Any()).
			Return(nil, apperrors.NewDatabaseError("database error", nil))

		result, err := service.GetAllEntries(context.Background())

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
