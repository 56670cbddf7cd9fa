package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/db"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
)

// These tests run against a real Postgres pointed to by TEST_DB_DSN and are
// skipped when it is unset. TEST_REDIS_ADDR additionally enables token revocation.
var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	testRedis  *redis.Client
	jwtManager *auth.JWTManager
)

func TestMain(m *testing.M) {
	// Attempt to load .env from the repository root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Printf("TEST_DB_DSN is not set, integration tests will be skipped")
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	testPool, err = db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	if err := db.Migrate(ctx, testPool); err != nil {
		log.Fatalf("Unable to migrate database: %v", err)
	}

	testRedis, err = db.NewRedisClient(ctx, os.Getenv("TEST_REDIS_ADDR"), "", 0)
	if err != nil {
		log.Fatalf("Unable to connect to redis: %v", err)
	}

	appContainer := NewContainer(Config{
		DBPool:     testPool,
		Redis:      testRedis,
		JWTSecret:  "integration-secret",
		JWTTTL:     30 * time.Minute,
		BcryptCost: bcrypt.MinCost,
	})
	testRouter = appContainer.Router
	jwtManager = appContainer.JWTManager

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	if testRedis != nil {
		_ = testRedis.Close()
	}
	testPool.Close()
	os.Exit(exitCode)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DB_DSN not set")
	}
}

func clearTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), "TRUNCATE TABLE public.bookings, public.rooms, public.users CASCADE")
	require.NoError(t, err, "Failed to clean tables")
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, email string, isSuperuser bool) *user.User {
	t.Helper()
	hash, err := auth.NewBcryptPasswordHasher(bcrypt.MinCost).Hash("password123")
	require.NoError(t, err, "Failed to hash password")

	u := &user.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  isSuperuser,
	}

	repo := user.NewPgxRepository(testPool)
	require.NoError(t, repo.Create(context.Background(), u), "Failed to create test user in DB")
	return u
}

func generateToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwtManager.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}
