package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"wellnessbook/internal/database"
	"wellnessbook/internal/domain"
	"wellnessbook/internal/middleware"
	"wellnessbook/internal/modules/auth"
	"wellnessbook/internal/modules/catalog"
	"wellnessbook/internal/modules/notification"
	"wellnessbook/internal/modules/provider"
	"wellnessbook/internal/modules/scheduling"
	jwtsvc "wellnessbook/internal/pkg/jwt"
	"wellnessbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	providerHandler := provider.NewHandler(provider.NewService(providerRepo, notificationService))
	catalogHandler := catalog.NewHandler(catalog.NewService(serviceRepo, providerRepo))
	schedulingHandler := scheduling.NewHandler(scheduling.NewService(appointmentRepo, notificationService), serviceRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)
	providerHandler.RegisterPublicRoutes(v1)
	schedulingHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterProtectedRoutes(protected)
		providerHandler.RegisterProtectedRoutes(protected)
		schedulingHandler.RegisterProtectedRoutes(protected)
		notificationHandler.RegisterProtectedRoutes(protected)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
	{
		providerHandler.RegisterAdminRoutes(admin)
		schedulingHandler.RegisterAdminRoutes(admin)
	}

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) adminToken(t *testing.T) string {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	admin := &domain.User{
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	require.NoError(t, s.db.Create(admin).Error)

	token, err := s.jwtService.GenerateToken(admin.ID, string(admin.Role))
	require.NoError(t, err)
	return token
}

// registerApprovedProvider walks the full onboarding flow and returns the
// provider's token and user id.
func (s *E2ETestSuite) registerApprovedProvider(t *testing.T, email string, adminToken string) (string, int64) {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/auth/register-provider", map[string]interface{}{
		"email":        email,
		"password":     "Password123!",
		"name":         "Mia",
		"display_name": "Calm Waters Spa",
		"specialty":    "massage",
		"city":         "Portland",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	token := resp.Data["token"].(string)
	userID := int64(resp.Data["user"].(map[string]interface{})["id"].(float64))

	w = s.makeRequest("PATCH", "/api/v1/my/provider", map[string]interface{}{
		"display_name": "Calm Waters Spa",
		"specialty":    "massage",
		"city":         "Portland",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest("POST", "/api/v1/my/provider/credentials", map[string]interface{}{
		"documents": []string{"doc://license.pdf"},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest("POST", "/api/v1/my/provider/submit", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest("POST", fmt.Sprintf("/api/v1/admin/providers/%d/approve", userID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return token, userID
}

func (s *E2ETestSuite) createOffering(t *testing.T, providerToken string, name string, duration int) int64 {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/my/services", map[string]interface{}{
		"name":             name,
		"category":         "massage",
		"duration_minutes": duration,
		"price":            80.0,
	}, providerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	return int64(resp.Data["service"].(map[string]interface{})["id"].(float64))
}

func registerCustomer(t *testing.T, s *E2ETestSuite, email string) string {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "Password123!",
		"name":     "Anna",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return parseResponse(t, w).Data["token"].(string)
}

func TestFlow_CustomerRegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	token := registerCustomer(t, suite, "anna@test.com")

	t.Run("login", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "anna@test.com",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "anna@test.com",
			"password": "nope-nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", parseResponse(t, w).Error.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/auth/me", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "anna@test.com", user["email"])
		assert.Equal(t, "customer", user["role"])
	})

	t.Run("me without token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow_ProviderOnboarding(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.adminToken(t)

	providerToken, _ := suite.registerApprovedProvider(t, "mia@test.com", adminToken)

	t.Run("approved provider appears in public directory", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/providers", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		providers := parseResponse(t, w).Data["providers"].([]interface{})
		require.Len(t, providers, 1)
		card := providers[0].(map[string]interface{})
		assert.Equal(t, "Calm Waters Spa", card["display_name"])
		assert.Nil(t, card["credential_docs"], "public card hides review internals")
	})

	t.Run("approved provider can publish a service", func(t *testing.T) {
		id := suite.createOffering(t, providerToken, "Swedish Massage", 60)
		assert.NotZero(t, id)
	})

	t.Run("unapproved provider cannot publish", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register-provider", map[string]interface{}{
			"email":        "new@test.com",
			"password":     "Password123!",
			"name":         "Noah",
			"display_name": "Stretch Lab",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)
		token := parseResponse(t, w).Data["token"].(string)

		w = suite.makeRequest("POST", "/api/v1/my/services", map[string]interface{}{
			"name":             "Yoga",
			"duration_minutes": 60,
			"price":            50.0,
		}, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "PROVIDER_NOT_APPROVED", parseResponse(t, w).Error.Code)
	})

	t.Run("rejected provider can revise and resubmit", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register-provider", map[string]interface{}{
			"email":        "retry@test.com",
			"password":     "Password123!",
			"name":         "Ira",
			"display_name": "Retry Spa",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		token := resp.Data["token"].(string)
		userID := int64(resp.Data["user"].(map[string]interface{})["id"].(float64))

		suite.makeRequest("PATCH", "/api/v1/my/provider", map[string]interface{}{"display_name": "Retry Spa"}, token)
		suite.makeRequest("POST", "/api/v1/my/provider/credentials", map[string]interface{}{"documents": []string{"doc://old.pdf"}}, token)
		suite.makeRequest("POST", "/api/v1/my/provider/submit", nil, token)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/providers/%d/reject", userID),
			map[string]interface{}{"reason": "license expired"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/my/provider/credentials", map[string]interface{}{"documents": []string{"doc://new.pdf"}}, token)
		require.Equal(t, http.StatusOK, w.Code, "rejected profile reopens for edits")

		w = suite.makeRequest("POST", "/api/v1/my/provider/submit", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		profile := parseResponse(t, w).Data["profile"].(map[string]interface{})
		assert.Equal(t, "pending", profile["status"])
	})
}

func TestFlow_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.adminToken(t)

	providerToken, providerID := suite.registerApprovedProvider(t, "mia@test.com", adminToken)
	serviceID := suite.createOffering(t, providerToken, "Swedish Massage", 60)
	customerToken := registerCustomer(t, suite, "anna@test.com")

	date := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	slotsPath := fmt.Sprintf("/api/v1/providers/%d/slots?date=%s&service_id=%d", providerID, date, serviceID)

	t.Run("empty day has nine hour slots", func(t *testing.T) {
		w := suite.makeRequest("GET", slotsPath, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		slots := parseResponse(t, w).Data["slots"].([]interface{})
		assert.Len(t, slots, 9)
		first := slots[0].(map[string]interface{})
		assert.Equal(t, "09:00", first["start_time"])
		assert.Equal(t, true, first["is_available"])
	})

	var appointmentID int64
	t.Run("book", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id":     serviceID,
			"date":           date,
			"start_time":     "10:00",
			"customer_notes": "first visit",
		}, customerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		appt := parseResponse(t, w).Data["appointment"].(map[string]interface{})
		assert.Equal(t, "pending", appt["status"])
		assert.Equal(t, "11:00", appt["end_time"])
		assert.Equal(t, "Pending", appt["status_label"])
		appointmentID = int64(appt["id"].(float64))
	})

	t.Run("booked slot is no longer available", func(t *testing.T) {
		w := suite.makeRequest("GET", slotsPath, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		for _, raw := range parseResponse(t, w).Data["slots"].([]interface{}) {
			slot := raw.(map[string]interface{})
			if slot["start_time"] == "10:00" {
				assert.Equal(t, false, slot["is_available"])
			}
		}
	})

	t.Run("double booking is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       date,
			"start_time": "10:30",
		}, customerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SLOT_TAKEN", parseResponse(t, w).Error.Code)
	})

	t.Run("adjacent booking is fine", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       date,
			"start_time": "11:00",
		}, customerToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("provider sees the booking notification", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/notifications/unread-count", nil, providerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.GreaterOrEqual(t, parseResponse(t, w).Data["unread"].(float64), 2.0)
	})

	t.Run("provider confirms", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/appointments/%d/status", appointmentID),
			map[string]interface{}{"status": "confirmed"}, providerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		appt := parseResponse(t, w).Data["appointment"].(map[string]interface{})
		assert.Equal(t, "confirmed", appt["status"])
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       date,
			"start_time": "14:00",
		}, customerToken)
		require.Equal(t, http.StatusCreated, w.Code)
		id := int64(parseResponse(t, w).Data["appointment"].(map[string]interface{})["id"].(float64))

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/appointments/%d/status", id),
			map[string]interface{}{"status": "completed"}, providerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_TRANSITION", parseResponse(t, w).Error.Code)
	})

	t.Run("another customer cannot touch the appointment", func(t *testing.T) {
		otherToken := registerCustomer(t, suite, "ben@test.com")
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/appointments/%d", appointmentID), nil, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("customer cancels and the slot frees up", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/cancel", appointmentID), nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("GET", slotsPath, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		for _, raw := range parseResponse(t, w).Data["slots"].([]interface{}) {
			slot := raw.(map[string]interface{})
			if slot["start_time"] == "10:00" {
				assert.Equal(t, true, slot["is_available"], "cancelled appointment no longer blocks")
			}
		}
	})

	t.Run("customer history splits upcoming and past", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/appointments/me", nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).Data
		assert.NotEmpty(t, data["upcoming"])
		assert.NotEmpty(t, data["past"], "cancelled appointment lands in past")
	})

	t.Run("admin lists and deletes by date", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/appointments?date="+date, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		appts := parseResponse(t, w).Data["appointments"].([]interface{})
		require.NotEmpty(t, appts)

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/appointments/%d", appointmentID), nil, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code, "admin delete lives under /admin")

		w = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/admin/appointments/%d", appointmentID), nil, adminToken)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("admin routes reject customers", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/appointments?date="+date, nil, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
