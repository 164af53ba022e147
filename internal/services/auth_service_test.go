package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/clothcycle/clothcycle-api/internal/security"
	"github.com/clothcycle/clothcycle-api/internal/services"
)

func newAuthFixtures() (*security.PasswordHasher, *security.TokenManager) {
	return security.NewPasswordHasher(), security.NewTokenManager("unit-test-secret", time.Hour)
}

func TestSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	hasher, tokens := newAuthFixtures()

	signup, err := services.Signup(db, hasher, tokens, "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if signup.Token == "" {
		t.Error("Expected a token from signup")
	}
	if signup.User.ID == 0 {
		t.Error("Expected a persisted user id")
	}
	if signup.User.Points != 0 || signup.User.Donations != 0 {
		t.Errorf("Expected fresh user with zero totals, got %+v", signup.User)
	}

	login, err := services.Login(db, hasher, tokens, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != signup.User.ID {
		t.Errorf("Expected login to resolve user %d, got %d", signup.User.ID, login.User.ID)
	}

	id, err := tokens.Validate(login.Token)
	if err != nil {
		t.Fatalf("Token from login did not validate: %v", err)
	}
	if id != signup.User.ID {
		t.Errorf("Token carries user %d, expected %d", id, signup.User.ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	hasher, tokens := newAuthFixtures()

	if _, err := services.Signup(db, hasher, tokens, "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}

	_, err := services.Signup(db, hasher, tokens, "Imposter", "ada@example.com", "other")
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	hasher, tokens := newAuthFixtures()

	if _, err := services.Signup(db, hasher, tokens, "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if _, err := services.Login(db, hasher, tokens, "ada@example.com", "wrong"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := services.Login(db, hasher, tokens, "nobody@example.com", "hunter22"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	hasher, tokens := newAuthFixtures()

	ada, err := services.Signup(db, hasher, tokens, "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if _, err := services.Signup(db, hasher, tokens, "Bob", "bob@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if err := services.UpdateUser(db, ada.User.ID, "Ada Lovelace", "lovelace@example.com"); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	profile, err := services.GetUserProfile(db, ada.User.ID)
	if err != nil {
		t.Fatalf("GetUserProfile failed: %v", err)
	}
	if profile.Profile.Name != "Ada Lovelace" || profile.Profile.Email != "lovelace@example.com" {
		t.Errorf("Update not persisted: %+v", profile.Profile)
	}

	if err := services.UpdateUser(db, ada.User.ID, "Ada", "bob@example.com"); !errors.Is(err, services.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken when stealing an email, got %v", err)
	}
	if err := services.UpdateUser(db, 9999, "Ghost", "ghost@example.com"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
}
