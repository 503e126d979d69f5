package userdb

import (
	"time"

	"github.com/google/uuid"
)

const emailTokenLifetime = 24 * time.Hour

// CreateEmailToken issues a single-use token (verification or password reset).
// The token value itself is the thing that would be emailed to the user;
// mail dispatch happens elsewhere.
func (u *UserDB) CreateEmailToken(userID int64, purpose TokenPurpose) (string, error) {
	now := time.Now().UTC()
	token := AuthToken{
		Key:       uuid.NewString(),
		UserID:    userID,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(emailTokenLifetime),
	}
	if err := u.DB.Create(&token).Error; err != nil {
		return "", err
	}
	return token.Key, nil
}

// ConsumeEmailToken validates and deletes a token. Returns the owning user id,
// or zero if the token is unknown, expired, or for a different purpose.
func (u *UserDB) ConsumeEmailToken(key string, purpose TokenPurpose) int64 {
	token := AuthToken{}
	u.DB.Where("key = ? AND purpose = ?", key, purpose).First(&token)
	if token.UserID == 0 {
		return 0
	}
	u.DB.Delete(&token)
	if time.Now().UTC().After(token.ExpiresAt) {
		return 0
	}
	return token.UserID
}
