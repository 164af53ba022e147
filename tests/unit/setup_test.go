package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/clothcycle/clothcycle-api/internal/database"
	"github.com/clothcycle/clothcycle-api/internal/handlers"
	"github.com/clothcycle/clothcycle-api/internal/middleware"
	"github.com/clothcycle/clothcycle-api/internal/security"
	"github.com/clothcycle/clothcycle-api/internal/services"
	"github.com/clothcycle/clothcycle-api/internal/types"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp assembles the /api route tree against an in-memory SQLite
// database, mirroring the wiring in cmd/server.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenManager("unit-test-secret", time.Hour)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Server error"
			switch e := err.(type) {
			case *types.CustomError:
				code = e.Code
				message = e.Message
			case *fiber.Error:
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	authHandler := &handlers.AuthHandler{DB: db, Hasher: hasher, Tokens: tokens}
	binHandler := &handlers.BinHandler{DB: db}
	scanHandler := &handlers.ScanHandler{DB: db, Policy: services.DefaultRewardPolicy}
	userHandler := &handlers.UserHandler{DB: db}
	leaderboardHandler := &handlers.LeaderboardHandler{DB: db}

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)

	api.Get("/bins", binHandler.ListBins)
	api.Get("/bins/code/:binCode", binHandler.GetBinByCode)
	api.Get("/bins/:binCode", binHandler.GetBinByCode)

	api.Post("/scan", middleware.Auth(tokens), scanHandler.Scan)

	api.Get("/leaderboard", leaderboardHandler.List)
	api.Get("/leaderboard/impact", leaderboardHandler.Impact)

	api.Get("/user/:id", middleware.Auth(tokens), userHandler.GetUser)
	api.Put("/user/:id/update", middleware.Auth(tokens), userHandler.UpdateUser)

	return app, db
}

// doJSON executes one request against the app, with an optional bearer token
// and an optional JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("Failed to execute %s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

func userPath(id uint64) string {
	return "/api/user/" + strconv.FormatUint(id, 10)
}

type authedUser struct {
	ID    uint64
	Token string
}

// signupUser registers a user through the API and returns id and token.
func signupUser(t *testing.T, app *fiber.App, name, email, password string) authedUser {
	resp := doJSON(t, app, "POST", "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Signup returned status %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]interface{})
	id, _ := user["id"].(float64)
	if token == "" || id <= 0 {
		t.Fatalf("Unexpected signup response: %v", body)
	}

	return authedUser{ID: uint64(id), Token: token}
}
