package auth_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/dojolanza/cuotas/go-api-server/internal/auth"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	sharedContext "github.com/dojolanza/cuotas/go-api-server/internal/shared/context"
	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*auth.AuthHandler, *gorm.DB) {
	t.Helper()

	// Setup test database
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	// Setup dependencies
	userRepo := auth.NewUserRepository()
	mockTokenManager := testutil.NewMockTokenManager()
	authService := auth.NewAuthService(db, userRepo, mockTokenManager)
	authHandler := auth.NewAuthHandler(authService)

	return authHandler, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, password string, active bool) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@dojolanza.mx",
		Password: string(hashed),
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin_Success(t *testing.T) {
	// Given: An active user
	authHandler, db := setupTestEnvironment(t)
	createTestUser(t, db, "sensei", "password123", true)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Username: "sensei",
			Password: "password123",
		},
	})

	// Then
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "mock-access-token", response.Token)
	assert.Equal(t, "sensei", response.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Given
	authHandler, db := setupTestEnvironment(t)
	createTestUser(t, db, "sensei", "password123", true)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Username: "sensei",
			Password: "incorrecta123",
		},
	})

	// Then
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-001", errorResponse.Code)
}

func TestLogin_UnknownUsername(t *testing.T) {
	// Given: No users at all
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Username: "fantasma",
			Password: "password123",
		},
	})

	// Then: Same response as a wrong password
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-001", errorResponse.Code)
}

func TestLogin_InactiveUser(t *testing.T) {
	// Given
	authHandler, db := setupTestEnvironment(t)
	createTestUser(t, db, "inactivo", "password123", false)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: auth.LoginRequest{
			Username: "inactivo",
			Password: "password123",
		},
	})

	// Then
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLogin_ValidationError(t *testing.T) {
	// Given
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/login", authHandler.Login)

	// When: Password shorter than the minimum
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body: map[string]string{
			"username": "sensei",
			"password": "corta",
		},
	})

	// Then
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestProfile_Success(t *testing.T) {
	// Given: An authenticated request
	authHandler, db := setupTestEnvironment(t)
	user := createTestUser(t, db, "sensei", "password123", true)

	router := testutil.SetupTestRouter()
	router.GET("/api/v1/auth/profile", func(c *gin.Context) {
		c.Set(sharedContext.UserIDKey, strconv.FormatUint(uint64(user.ID), 10))
		authHandler.Profile(c)
	})

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/auth/profile",
	})

	// Then
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response auth.UserResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, user.ID, response.ID)
	assert.Equal(t, "sensei", response.Username)
}

func TestProfile_MissingAuthentication(t *testing.T) {
	// Given: No user ID in context
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.GET("/api/v1/auth/profile", authHandler.Profile)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/auth/profile",
	})

	// Then
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	// Given
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	cfg.Admin.Username = "admin"
	cfg.Admin.Email = "admin@dojolanza.mx"
	cfg.Admin.Password = "administrador123"

	// When
	require.NoError(t, auth.EnsureDefaultAdmin(context.Background(), db, cfg))

	// Then: The operator account exists with a hashed password
	var user model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("administrador123")))

	// When: Running again it does not duplicate
	require.NoError(t, auth.EnsureDefaultAdmin(context.Background(), db, cfg))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureDefaultAdmin_SkippedWithoutPassword(t *testing.T) {
	// Given
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	cfg.Admin.Password = ""

	// When
	require.NoError(t, auth.EnsureDefaultAdmin(context.Background(), db, cfg))

	// Then: No user was created
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
