package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"qaqfplatform/backend/config"
	"qaqfplatform/backend/models"
	"qaqfplatform/backend/routes"
	"qaqfplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	app        *fiber.App
	db         *gorm.DB
	cfg        *config.Config
	tmpDir     string
	adminUser  models.User
	plainUser  models.User
	adminToken string
	plainToken string
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	var err error
	tmpDir, err = os.MkdirTemp("", "qaqf-test-*")
	if err != nil {
		panic(err)
	}

	cfg = &config.Config{
		ServerPort:       "8080",
		DBType:           "sqlite",
		DBPath:           filepath.Join(tmpDir, "test.db"),
		JWTSecret:        "testsecret",
		TokenTTLHours:    72,
		OllamaURL:        "http://127.0.0.1:1", // nothing listens here
		OllamaModel:      "llama3.2",
		OllamaTimeoutSec: 2,
		UploadDir:        filepath.Join(tmpDir, "uploads"),
		MaxUploadMB:      5,
	}

	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg, utils.InitLogger())

	adminUser = createUser("admin", "admin@example.com", "password", "admin")
	plainUser = createUser("alice", "alice@example.com", "password", "user")
	adminToken = tokenFor(adminUser)
	plainToken = tokenFor(plainUser)
}

func teardown() {
	os.RemoveAll(tmpDir)
}

func createUser(username, email, password, role string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Name:         username,
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}
	return user
}

func tokenFor(user models.User) string {
	token, err := utils.GenerateJWTToken(user.ID, user.Username, cfg)
	if err != nil {
		panic(err)
	}
	return token
}

// doJSON sends a JSON request through the app and decodes the envelope.
func doJSON(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	var envelope map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, envelope
}

func dataOf(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", envelope)
	}
	return data
}

func listOf(t *testing.T, envelope map[string]interface{}) []interface{} {
	t.Helper()
	data, ok := envelope["data"].([]interface{})
	if !ok {
		t.Fatalf("response has no data array: %v", envelope)
	}
	return data
}

func idOf(t *testing.T, data map[string]interface{}) uint {
	t.Helper()
	id, ok := data["id"].(float64)
	if !ok {
		// gorm.Model serializes its primary key as "ID".
		id, ok = data["ID"].(float64)
	}
	if !ok {
		t.Fatalf("object has no numeric id: %v", data)
	}
	return uint(id)
}

func jsonPath(data map[string]interface{}, key string) string {
	value, _ := data[key].(string)
	return value
}
