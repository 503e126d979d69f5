package userdb

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
)

func Migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE user(
			id INTEGER PRIMARY KEY,
			email TEXT NOT NULL,
			name TEXT NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			association_id INT,
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
			pending_access BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			last_login_at TIMESTAMP
		);
		CREATE UNIQUE INDEX idx_user_email ON user (email);

		CREATE TABLE session(
			key TEXT PRIMARY KEY,
			user_id INT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL
		);
		CREATE INDEX idx_session_user_id ON session (user_id);
		CREATE INDEX idx_session_expires_at ON session (expires_at);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE auth_token(
			key TEXT PRIMARY KEY,
			user_id INT NOT NULL,
			purpose TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL
		);
		CREATE INDEX idx_auth_token_user_id ON auth_token (user_id);
	`))

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`ALTER TABLE user ADD COLUMN entity_type TEXT NOT NULL DEFAULT '';`))

	return migs
}
