package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))

	return resp.StatusCode, parsed
}

func TestSignupValidation(t *testing.T) {
	app, db := setupApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Jo",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Validation failure must not leave a user behind
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSignupConfirmLoginFlow(t *testing.T) {
	app, db := setupApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "New Learner",
		"email":    "learner@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	// Duplicate signup is rejected
	status, _ = doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "New Learner",
		"email":    "learner@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Login before confirming the email is refused
	status, _ = doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "learner@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	var verification models.VerificationCode
	require.NoError(t, db.Where("email = ?", "learner@example.com").First(&verification).Error)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/confirm-email", "", fiber.Map{
		"email": "learner@example.com",
		"code":  verification.Code,
	})
	require.Equal(t, http.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "learner@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email   string `json:"email"`
			IsAdmin bool   `json:"is_admin"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	assert.Equal(t, "learner@example.com", data.User.Email)
	assert.False(t, data.User.IsAdmin)

	// The token works against the session endpoint
	status, resp = doRequest(t, app, http.MethodGet, "/auth/session", data.Token, nil)
	require.Equal(t, http.StatusOK, status)

	var session struct {
		IsAdmin bool        `json:"is_admin"`
		User    models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	assert.Equal(t, "learner@example.com", session.User.Email)
}

func TestLoginWithWrongPassword(t *testing.T) {
	app, db := setupApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Someone",
		"email":    "someone@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "someone@example.com").
		Update("is_email_verified", true).Error)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "someone@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Unknown accounts get the same answer as bad passwords
	status, _ = doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "ghost@example.com",
		"password": "whatever1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestConfirmEmailWithBadCode(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Pending",
		"email":    "pending@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/confirm-email", "", fiber.Map{
		"email": "pending@example.com",
		"code":  "000000",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSessionRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := doRequest(t, app, http.MethodGet, "/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPasswordResetFlow(t *testing.T) {
	app, db := setupApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Reset Me",
		"email":    "reset@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "reset@example.com").
		Update("is_email_verified", true).Error)

	// The response never reveals whether the account exists
	status, _ = doRequest(t, app, http.MethodPost, "/auth/forgot-password", "", fiber.Map{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/forgot-password", "", fiber.Map{
		"email": "reset@example.com",
	})
	require.Equal(t, http.StatusOK, status)

	var verification models.VerificationCode
	require.NoError(t, db.Where("email = ? AND purpose = ?", "reset@example.com", "RESET_PASSWORD").
		First(&verification).Error)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/reset-password", "", fiber.Map{
		"email":        "reset@example.com",
		"code":         verification.Code,
		"new_password": "fresh-secret",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "reset@example.com",
		"password": "fresh-secret",
	})
	assert.Equal(t, http.StatusOK, status)

	// The code is single-use
	status, _ = doRequest(t, app, http.MethodPost, "/auth/reset-password", "", fiber.Map{
		"email":        "reset@example.com",
		"code":         verification.Code,
		"new_password": "another-one",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
