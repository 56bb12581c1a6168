package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/schoolpilot/waitlist-api/config"
	"github.com/schoolpilot/waitlist-api/config/router"
	"github.com/schoolpilot/waitlist-api/domain"
	"github.com/schoolpilot/waitlist-api/internal/events"
	"github.com/schoolpilot/waitlist-api/internal/log"
	"github.com/schoolpilot/waitlist-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminUsername = "operator"
	testAdminPassword = "launch-day-secret"
	testSessionSecret = "integration-session-secret"
)

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(models.ModelRegistry...)
	suite.Require().NoError(err)

	suite.logger = log.NewLoggerWithJSONOutput()

	suite.appConfig = &config.ApplicationConfig{
		DB:     suite.db,
		Logger: suite.logger,
		Bus:    events.NewBus(),
		Auth: &config.AuthConfig{
			AdminUsername: testAdminUsername,
			AdminPassword: testAdminPassword,
			SessionSecret: testSessionSecret,
		},
	}

	suite.appConfig.RouterService = router.CreateRouterService(suite.logger, nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		sqlDB.Close()
	}
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlist_entries")
	suite.db.Exec("DELETE FROM notification_subscribers")
	suite.db.Exec("DELETE FROM sent_notifications")
}

func (suite *WaitlistAPITestSuite) postJSON(path string, body any) *http.Response {
	jsonBody, err := json.Marshal(body)
	suite.Require().NoError(err)

	resp, err := http.Post(suite.baseURL+path, "application/json", bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	return resp
}

func decodeEnvelope(suite *WaitlistAPITestSuite, resp *http.Response) map[string]interface{} {
	var response map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)
	return response
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	response := decodeEnvelope(suite, resp)

	suite.Equal(float64(200), response["code"])
	suite.Contains(response["message"], "health check completed")

	data := response["data"].(map[string]interface{})
	suite.Contains(data, "database")
	suite.Contains(data, "uptime")

	suite.Equal(float64(1), data["database"])
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlist() {
	resp := suite.postJSON("/v1/waitlist", map[string]string{
		"school_name":  "Hillcrest Academy",
		"email":        "admin@hillcrest.edu",
		"phone_number": "+15551234567",
	})
	defer resp.Body.Close()

	suite.Equal(http.StatusCreated, resp.StatusCode)

	response := decodeEnvelope(suite, resp)

	suite.Equal(float64(201), response["code"])
	suite.Contains(response["message"], "created successfully")

	data := response["data"].(map[string]interface{})
	suite.Equal("Hillcrest Academy", data["school_name"])
	suite.Equal("admin@hillcrest.edu", data["email"])
	suite.Equal(float64(models.DefaultLaunchDiscount), data["discount"])
	suite.Contains(data, "id")
	suite.Contains(data, "created_at")
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlistSubscribesForNotifications() {
	resp := suite.postJSON("/v1/waitlist", map[string]string{
		"school_name": "Riverside Prep",
		"email":       "head@riverside.edu",
	})
	defer resp.Body.Close()

	suite.Equal(http.StatusCreated, resp.StatusCode)

	var count int64
	err := suite.db.Model(&models.NotificationSubscriber{}).
		Where("email = ?", "head@riverside.edu").
		Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlistValidationError() {
	resp := suite.postJSON("/v1/waitlist", map[string]string{
		"email": "admin@hillcrest.edu",
	})
	defer resp.Body.Close()

	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	response := decodeEnvelope(suite, resp)

	suite.Equal(float64(400), response["code"])
	suite.Contains(response["message"], "Invalid request payload")

	data := response["data"].([]interface{})
	suite.True(len(data) > 0)

	foundSchoolNameError := false
	for _, item := range data {
		fieldError := item.(map[string]interface{})
		if fieldError["field"].(string) == "school_name" {
			foundSchoolNameError = true
			suite.Contains(fieldError["message"], "required")
		}
	}
	suite.True(foundSchoolNameError, "Should have school_name validation error")
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlistImplausibleEmail() {
	resp := suite.postJSON("/v1/waitlist", map[string]string{
		"school_name": "Hillcrest Academy",
		"email":       "not-an-email",
	})
	defer resp.Body.Close()

	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	response := decodeEnvelope(suite, resp)
	suite.Contains(response["message"], "valid email address")
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlistDuplicateEmail() {
	first := suite.postJSON("/v1/waitlist", map[string]string{
		"school_name": "Hillcrest Academy",
		"email":       "admin@hillcrest.edu",
	})
	first.Body.Close()
	suite.Equal(http.StatusCreated, first.StatusCode)

	second := suite.postJSON("/v1/waitlist", map[string]string{
		"school_name": "Hillcrest Academy Annex",
		"email":       "admin@hillcrest.edu",
	})
	defer second.Body.Close()

	suite.Equal(http.StatusConflict, second.StatusCode)

	response := decodeEnvelope(suite, second)
	suite.Equal(float64(409), response["code"])
	suite.Contains(response["message"], "already on our waitlist")

	var count int64
	err := suite.db.Model(&models.WaitlistEntry{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *WaitlistAPITestSuite) TestSubscribeForNotifications() {
	resp := suite.postJSON("/v1/notifications/subscribe", map[string]string{
		"email": "parent@example.com",
	})
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	response := decodeEnvelope(suite, resp)
	suite.Contains(response["message"], "Subscribed")

	var count int64
	err := suite.db.Model(&models.NotificationSubscriber{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *WaitlistAPITestSuite) TestSubscribeDuplicateEmail() {
	first := suite.postJSON("/v1/notifications/subscribe", map[string]string{
		"email": "parent@example.com",
	})
	first.Body.Close()
	suite.Equal(http.StatusOK, first.StatusCode)

	second := suite.postJSON("/v1/notifications/subscribe", map[string]string{
		"email": "parent@example.com",
	})
	defer second.Body.Close()

	suite.Equal(http.StatusConflict, second.StatusCode)

	response := decodeEnvelope(suite, second)
	suite.Contains(response["message"], "already subscribed")
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
