package services

import (
	"errors"

	"github.com/clothcycle/clothcycle-api/internal/models"
	"github.com/clothcycle/clothcycle-api/internal/security"
	"gorm.io/gorm"
)

// AuthResult is the signup/login response payload.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup registers a new user with zero points and donations and issues a
// bearer token. Duplicate emails fail with ErrEmailTaken; the pre-check
// catches the common case and the unique index catches racing signups.
func Signup(db *gorm.DB, hasher *security.PasswordHasher, tokens *security.TokenManager, name, email, password string) (*AuthResult, error) {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Email: email, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login checks the credentials and issues a fresh token. Unknown email and
// wrong password both map to ErrInvalidCredentials.
func Login(db *gorm.DB, hasher *security.PasswordHasher, tokens *security.TokenManager, email, password string) (*AuthResult, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// UpdateUser changes the mutable profile fields. Points and donation counts
// are out of reach here on purpose.
func UpdateUser(db *gorm.DB, id uint64, name, email string) error {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err := db.Model(&user).Updates(map[string]interface{}{
		"name":  name,
		"email": email,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}

	return nil
}
