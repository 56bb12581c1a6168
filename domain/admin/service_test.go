package admin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/schoolpilot/waitlist-api/domain/notifications"
	"github.com/schoolpilot/waitlist-api/domain/waitlist"
	"github.com/schoolpilot/waitlist-api/internal/log"
	apperrors "github.com/schoolpilot/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stubWaitlistService struct {
	entries []waitlist.WaitlistEntryResponse
	count   int64
	err     error
}

func (s *stubWaitlistService) JoinWaitlist(context.Context, *waitlist.JoinWaitlistRequest) (*waitlist.WaitlistEntryResponse, error) {
	return nil, nil
}

func (s *stubWaitlistService) GetAllEntries(context.Context) ([]waitlist.WaitlistEntryResponse, error) {
	return s.entries, s.err
}

func (s *stubWaitlistService) CountEntries(context.Context) (int64, error) {
	return s.count, s.err
}

type stubNotificationService struct {
	subscribers []notifications.SubscriberResponse
	count       int64
	err         error
}

func (s *stubNotificationService) Subscribe(context.Context, string) error { return nil }

func (s *stubNotificationService) GetAllSubscribers(context.Context) ([]notifications.SubscriberResponse, error) {
	return s.subscribers, s.err
}

func (s *stubNotificationService) CountSubscribers(context.Context) (int64, error) {
	return s.count, s.err
}

func (s *stubNotificationService) Broadcast(_ context.Context, req *notifications.BroadcastRequest) (*notifications.BroadcastResponse, error) {
	return &notifications.BroadcastResponse{RecipientsCount: int(s.count)}, nil
}

type memoryCache struct {
	mu      sync.Mutex
	values  map[string]string
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.deletes++
	return nil
}

func TestAdminService_ListsReturnEmptyOnStoreFault(t *testing.T) {
	logger := log.NewLoggerWithJSONOutput()

	service := NewAdminService(
		logger,
		&stubWaitlistService{err: apperrors.NewDatabaseError("store unreachable", nil)},
		&stubNotificationService{err: apperrors.NewDatabaseError("store unreachable", nil)},
		nil,
	)

	entries := service.ListWaitlistEntries(context.Background())
	subscribers := service.ListSubscribers(context.Background())

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NotNil(t, subscribers)
	assert.Empty(t, subscribers)
}

func TestAdminService_ListsPassThrough(t *testing.T) {
	logger := log.NewLoggerWithJSONOutput()

	service := NewAdminService(
		logger,
		&stubWaitlistService{entries: []waitlist.WaitlistEntryResponse{{SchoolName: "Springfield Elementary"}}},
		&stubNotificationService{subscribers: []notifications.SubscriberResponse{{Email: "a@b.com"}}},
		nil,
	)

	entries := service.ListWaitlistEntries(context.Background())
	subscribers := service.ListSubscribers(context.Background())

	assert.Len(t, entries, 1)
	assert.Len(t, subscribers, 1)
}

func TestAdminService_DashboardCachesCounts(t *testing.T) {
	logger := log.NewLoggerWithJSONOutput()
	cache := newMemoryCache()

	waitlistStub := &stubWaitlistService{count: 4}
	notificationStub := &stubNotificationService{count: 9}

	service := NewAdminService(logger, waitlistStub, notificationStub, cache)

	dashboard := service.Dashboard(context.Background())
	assert.Equal(t, int64(4), dashboard.WaitlistCount)
	assert.Equal(t, int64(9), dashboard.SubscriberCount)

	// Second read comes from cache even when the store counts change.
	waitlistStub.count = 100
	cached := service.Dashboard(context.Background())
	assert.Equal(t, int64(4), cached.WaitlistCount)

	service.InvalidateDashboard()
	assert.Equal(t, 1, cache.deletes)

	fresh := service.Dashboard(context.Background())
	assert.Equal(t, int64(100), fresh.WaitlistCount)
}
