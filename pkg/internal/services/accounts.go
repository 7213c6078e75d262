package services

import (
	"errors"
	"fmt"

	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/paperlark/paperlark/pkg/internal/security"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken        = errors.New("user with this email already exists")
	ErrAccountNotFound   = errors.New("user does not exist")
	ErrIncorrectPassword = errors.New("incorrect password")
)

func GetAccountWithEmail(tx *gorm.DB, email string) (models.User, error) {
	var account models.User
	if err := tx.Where("email = ?", email).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// RegisterAccount creates a user with a hashed password. A duplicate email is
// reported as ErrEmailTaken whether it is caught by the lookup or by the
// unique index during a concurrent register.
func RegisterAccount(tx *gorm.DB, email, name, password string) (models.User, error) {
	if _, err := GetAccountWithEmail(tx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("unable to hash password: %v", err)
	}

	account := models.User{
		Email:    email,
		Name:     name,
		Password: hashed,
	}

	if err := tx.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account, ErrEmailTaken
		}
		return account, err
	}

	return account, nil
}

// AuthenticateAccount verifies a credential pair against the stored digest.
func AuthenticateAccount(tx *gorm.DB, email, password string) (models.User, error) {
	account, err := GetAccountWithEmail(tx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrAccountNotFound
		}
		return account, err
	}

	if !security.VerifyPassword(password, account.Password) {
		return account, ErrIncorrectPassword
	}

	return account, nil
}
