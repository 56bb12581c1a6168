package admin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/schoolpilot/waitlist-api/domain/notifications"
	"github.com/schoolpilot/waitlist-api/domain/waitlist"
	"github.com/schoolpilot/waitlist-api/internal/log"
)

const (
	dashboardCacheKey = "admin:dashboard"
	dashboardCacheTTL = 5 * time.Minute
)

// Cache is the slice of the application cache the dashboard uses.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type DashboardResponse struct {
	WaitlistCount   int64 `json:"waitlist_count"`
	SubscriberCount int64 `json:"subscriber_count"`
}

// AdminService is the operator-facing read surface. The list operations never
// fail: a store fault is logged and an empty roster is returned, so the
// dashboard renders regardless.
type AdminService interface {
	ListWaitlistEntries(ctx context.Context) []waitlist.WaitlistEntryResponse
	ListSubscribers(ctx context.Context) []notifications.SubscriberResponse
	Dashboard(ctx context.Context) *DashboardResponse
	SendNotification(ctx context.Context, req *notifications.BroadcastRequest) (*notifications.BroadcastResponse, error)
	InvalidateDashboard()
}

type adminService struct {
	logger        *log.Logger
	waitlist      waitlist.WaitlistService
	notifications notifications.NotificationService
	cache         Cache
}

func NewAdminService(
	logger *log.Logger,
	waitlistService waitlist.WaitlistService,
	notificationService notifications.NotificationService,
	cache Cache,
) AdminService {
	return &adminService{
		logger:        logger,
		waitlist:      waitlistService,
		notifications: notificationService,
		cache:         cache,
	}
}

func (s *adminService) ListWaitlistEntries(ctx context.Context) []waitlist.WaitlistEntryResponse {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.waitlist.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to fetch waitlist entries for admin view", "error", err)
		return []waitlist.WaitlistEntryResponse{}
	}

	return entries
}

func (s *adminService) ListSubscribers(ctx context.Context) []notifications.SubscriberResponse {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	subscribers, err := s.notifications.GetAllSubscribers(ctx)
	if err != nil {
		logger.Error("Failed to fetch subscribers for admin view", "error", err)
		return []notifications.SubscriberResponse{}
	}

	return subscribers
}

func (s *adminService) Dashboard(ctx context.Context) *DashboardResponse {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if cached := s.cachedDashboard(ctx); cached != nil {
		return cached
	}

	dashboard := &DashboardResponse{}

	waitlistCount, err := s.waitlist.CountEntries(ctx)
	if err != nil {
		logger.Error("Failed to count waitlist entries for dashboard", "error", err)
	} else {
		dashboard.WaitlistCount = waitlistCount
	}

	subscriberCount, err := s.notifications.CountSubscribers(ctx)
	if err != nil {
		logger.Error("Failed to count subscribers for dashboard", "error", err)
	} else {
		dashboard.SubscriberCount = subscriberCount
	}

	s.storeDashboard(ctx, dashboard)
	return dashboard
}

func (s *adminService) SendNotification(ctx context.Context, req *notifications.BroadcastRequest) (*notifications.BroadcastResponse, error) {
	return s.notifications.Broadcast(ctx, req)
}

// InvalidateDashboard drops the cached counts. Wired to the waitlist and
// subscriber change events.
func (s *adminService) InvalidateDashboard() {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", "error", err)
	}
}

func (s *adminService) cachedDashboard(ctx context.Context) *DashboardResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, dashboardCacheKey)
	if err != nil || raw == "" {
		return nil
	}

	dashboard := &DashboardResponse{}
	if err := json.Unmarshal([]byte(raw), dashboard); err != nil {
		return nil
	}

	return dashboard
}

func (s *adminService) storeDashboard(ctx context.Context, dashboard *DashboardResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(dashboard)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, string(raw), dashboardCacheTTL); err != nil {
		s.logger.Warn("Failed to cache dashboard counts", "error", err)
	}
}
