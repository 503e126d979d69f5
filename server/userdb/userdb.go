package userdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserDB owns the accounts database: users, sessions, and emailed tokens.
// Domain entities (associations, members, payments...) live in the upstream
// backend; this DB holds only what the access-control layer needs.
type UserDB struct {
	Log logs.Log
	DB  *gorm.DB
}

func NewUserDB(logger logs.Log, config dbh.DBConfig) (*UserDB, error) {
	if config.Driver == dbh.DriverSqlite {
		os.MkdirAll(filepath.Dir(config.Database), 0777)
	}
	db, err := dbh.OpenDB(logger, config, Migrations(logger), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open users database: %w", err)
	}
	u := &UserDB{
		Log: logger,
		DB:  db,
	}
	if err := u.seedInitialUser(); err != nil {
		return nil, err
	}
	return u, nil
}

// If the user table is empty, create a superadmin with a random password,
// and print the password to the log. This is the only way the first login
// can happen on a fresh database.
func (u *UserDB) seedInitialUser() error {
	n := int64(0)
	if err := u.DB.Model(&User{}).Count(&n).Error; err != nil {
		return err
	}
	if n != 0 {
		return nil
	}
	password := StrongRandomAlphaNumChars(20)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		Email:              "admin@uright.local",
		Name:               "Administrador",
		Password:           string(hash),
		Role:               RoleSuperadmin,
		EmailVerified:      true,
		OnboardingComplete: true,
		CreatedAt:          time.Now().UTC(),
	}
	if err := u.DB.Create(&admin).Error; err != nil {
		return err
	}
	u.Log.Infof("User table is empty, created initial superadmin")
	u.Log.Infof("Email: %v", admin.Email)
	u.Log.Infof("Password: %v", password)
	return nil
}
