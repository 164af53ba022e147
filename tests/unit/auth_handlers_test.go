package handlers_test

import (
	"testing"
)

// TestSignupEndpoint tests POST /api/auth/signup
func TestSignupEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/signup", "", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "hunter22",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}
	if body["token"] == nil || body["token"] == "" {
		t.Error("Expected a token in the signup response")
	}

	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a user object, got %v", body["user"])
	}
	if user["email"] != "ada@example.com" {
		t.Errorf("Expected email echoed back, got %v", user["email"])
	}
	if _, exposed := user["passwordHash"]; exposed {
		t.Error("Password hash must never appear in responses")
	}
	if user["points"] != float64(0) || user["donations"] != float64(0) {
		t.Errorf("Expected zero totals for a fresh user, got %v", user)
	}
}

// TestSignupMissingFields tests the 400 path
func TestSignupMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/signup", "", map[string]string{
		"name": "Ada",
	})
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Missing fields" {
		t.Errorf("Expected 'Missing fields' error, got %v", body["error"])
	}
}

// TestSignupDuplicateEmail tests the 409 path
func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	signupUser(t, app, "Ada", "ada@example.com", "hunter22")

	resp := doJSON(t, app, "POST", "/api/auth/signup", "", map[string]string{
		"name":     "Imposter",
		"email":    "ada@example.com",
		"password": "other",
	})
	if resp.StatusCode != 409 {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Email already registered" {
		t.Errorf("Expected duplicate email error, got %v", body["error"])
	}
}

// TestLoginEndpoint tests POST /api/auth/login
func TestLoginEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	created := signupUser(t, app, "Ada", "ada@example.com", "hunter22")

	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter22",
	})
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	user, _ := body["user"].(map[string]interface{})
	if id, _ := user["id"].(float64); uint64(id) != created.ID {
		t.Errorf("Expected login to resolve user %d, got %v", created.ID, user["id"])
	}
}

// TestLoginWrongPassword tests the 401 path
func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	signupUser(t, app, "Ada", "ada@example.com", "hunter22")

	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	if resp.StatusCode != 401 {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Invalid email or password" {
		t.Errorf("Expected credential error, got %v", body["error"])
	}
}
