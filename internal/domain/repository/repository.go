package repository

import (
	"database/sql"

	"cp_tracker/internal/platform/config"
)

// Repositories groups the stores backed by one database handle.
type Repositories struct {
	Users       UserRepository
	Submissions SubmissionRepository
}

// New picks the implementation that matches the configured driver.
func New(db *sql.DB, driver string) *Repositories {
	if driver == config.DriverSQLite {
		return &Repositories{
			Users:       NewSQLiteUserRepository(db),
			Submissions: NewSQLiteSubmissionRepository(db),
		}
	}
	return &Repositories{
		Users:       NewPgUserRepository(db),
		Submissions: NewPgSubmissionRepository(db),
	}
}
