package userdb

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SYNC-URIGHT-SESSION-COOKIE
const SessionCookie = "auth_token"

// SessionLifetime matches the cookie max-age the web app has always used.
const SessionLifetime = 30 * 24 * time.Hour

// Credentials is the result of a successful request authentication.
type Credentials struct {
	User *User
	// SessionKey is the hashed token of the session that authenticated this
	// request (cookie or bearer). Used to log out exactly this session.
	SessionKey string
}

func (c *Credentials) HasPermission(p Permission) bool {
	return c.User.HasPermission(p)
}

// Hash the session token so that the plaintext only ever lives with the caller
// (guards the DB BTree lookup against timing attacks, and a DB leak against reuse).
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(h[:])
}

// requestToken extracts the session token from the auth_token cookie, or an
// Authorization: Bearer header. Returns "" if neither is present.
func requestToken(r *http.Request) string {
	if cookie, _ := r.Cookie(SessionCookie); cookie != nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}

// PeekCredentials authenticates the request from its session token, without
// writing anything to the response. Returns nil for no token, an unknown
// token, or an expired session.
func (u *UserDB) PeekCredentials(r *http.Request) *Credentials {
	token := requestToken(r)
	if token == "" {
		return nil
	}
	key := HashSessionToken(token)
	session := Session{}
	u.DB.Where("key = ?", key).First(&session)
	if session.UserID == 0 {
		return nil
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		u.DB.Delete(&session)
		return nil
	}
	user, err := u.GetUserByID(session.UserID)
	if err != nil || user == nil {
		return nil
	}
	return &Credentials{User: user, SessionKey: key}
}

// Login verifies email/password. On success it creates a session, sets the
// auth_token cookie on 'w', and returns the user and the plaintext token.
// On failure it returns nil and an empty token.
func (u *UserDB) Login(w http.ResponseWriter, email, password string) (*User, string) {
	user, err := u.GetUserByEmail(email)
	if err != nil || user == nil {
		return nil, ""
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ""
	}
	token := u.createSession(w, user.ID)
	if token == "" {
		return nil, ""
	}
	now := time.Now().UTC()
	u.DB.Model(&User{}).Where("id = ?", user.ID).Update("last_login_at", now)
	user.LastLoginAt = &now
	return user, token
}

// LoginUser creates a session for an already-verified user (eg straight after
// registration), without a password check.
func (u *UserDB) LoginUser(w http.ResponseWriter, userID int64) string {
	return u.createSession(w, userID)
}

func (u *UserDB) createSession(w http.ResponseWriter, userID int64) string {
	now := time.Now().UTC()
	expiresAt := now.Add(SessionLifetime)
	token := StrongRandomAlphaNumChars(30)
	session := Session{
		Key:       HashSessionToken(token),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := u.DB.Create(&session).Error; err != nil {
		u.Log.Errorf("Error creating session: %v", err)
		return ""
	}
	u.PurgeExpiredSessions()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionLifetime / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// Logout deletes the calling session and clears the cookie.
func (u *UserDB) Logout(w http.ResponseWriter, r *http.Request) {
	if token := requestToken(r); token != "" {
		u.DB.Where("key = ?", HashSessionToken(token)).Delete(&Session{})
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

// EraseAllSessions logs a user out everywhere (eg after a password reset).
func (u *UserDB) EraseAllSessions(userID int64) error {
	return u.DB.Where("user_id = ?", userID).Delete(&Session{}).Error
}

func (u *UserDB) PurgeExpiredSessions() {
	u.DB.Where("expires_at < ?", time.Now().UTC()).Delete(&Session{})
}
