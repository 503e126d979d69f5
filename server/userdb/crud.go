package userdb

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserDB) GetUserByID(id int64) (*User, error) {
	user := User{}
	err := u.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserDB) GetUserByEmail(email string) (*User, error) {
	user := User{}
	err := u.DB.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser hashes the password and inserts the user. The email must not
// already exist.
func (u *UserDB) CreateUser(user *User, password string) error {
	user.ID = 0
	user.Email = NormalizeEmail(user.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.CreatedAt = time.Now().UTC()
	return u.DB.Create(user).Error
}

func (u *UserDB) SetPassword(userID int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return u.DB.Model(&User{}).Where("id = ?", userID).Update("password", string(hash)).Error
}

func (u *UserDB) SetEmailVerified(userID int64) error {
	return u.DB.Model(&User{}).Where("id = ?", userID).Update("email_verified", true).Error
}

func (u *UserDB) SetOnboardingComplete(userID int64, pendingAccess bool) error {
	return u.DB.Model(&User{}).Where("id = ?", userID).
		Updates(map[string]any{"onboarding_complete": true, "pending_access": pendingAccess}).Error
}

func (u *UserDB) SetAssociation(userID int64, associationID *int64) error {
	return u.DB.Model(&User{}).Where("id = ?", userID).Update("association_id", associationID).Error
}
