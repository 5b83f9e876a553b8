package notify

import (
	"database/sql"
	"fmt"

	"github.com/BurntSushi/migration"
	_ "github.com/lib/pq"
)

// sqlChannelDB is the channel registry: named connection descriptors, so
// credentials can be rotated without touching the config file. Nothing about
// sent messages is stored.
type sqlChannelDB struct {
	db *sql.DB
}

func (x *ConfigDBConnection) open() (*sql.DB, error) {
	return sql.Open(x.Driver, x.connectionString(true))
}

// createDB creates the database if it does not exist yet.
func (x *ConfigDBConnection) createDB() error {
	db, err := sql.Open(x.Driver, x.connectionString(false))
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec("CREATE DATABASE " + x.Database)
	return err
}

// getChannelDSN returns the DSN registered under name.
func (x *sqlChannelDB) getChannelDSN(name string) (string, error) {
	var dsn string
	err := x.db.QueryRow(`SELECT dsn FROM channel WHERE name = $1`, name).Scan(&dsn)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("channel %q is not registered", name)
	} else if err != nil {
		return "", fmt.Errorf("channel %q: %w", name, err)
	}
	return dsn, nil
}

func (x *sqlChannelDB) close() {
	if x.db != nil {
		x.db.Close()
		x.db = nil
	}
}

func (x *ConfigDBConnection) runMigrations() error {
	db, err := migration.Open(x.Driver, x.connectionString(true), createMigrations())
	if err == nil {
		db.Close()
	}
	return err
}

func createMigrations() []migration.Migrator {
	var migrations []migration.Migrator

	text := []string{
		`CREATE TABLE channel (
			name VARCHAR PRIMARY KEY,
			dsn VARCHAR NOT NULL,
			created TIMESTAMP DEFAULT now()
		)`,
	}

	for _, src := range text {
		srcCapture := src
		migrations = append(migrations, func(tx migration.LimitedTx) error {
			_, err := tx.Exec(srcCapture)
			return err
		})
	}
	return migrations
}

func (x *ConfigDBConnection) connectionString(addDB bool) string {
	sslmode := "disable"
	if x.SSL {
		sslmode = "require"
	}
	conStr := fmt.Sprintf("host=%v user=%v password=%v sslmode=%v", x.Host, x.User, x.Password, sslmode)
	if addDB {
		conStr += fmt.Sprintf(" dbname=%v", x.Database)
	}
	if x.Port != 0 {
		conStr += fmt.Sprintf(" port=%v", x.Port)
	}
	return conStr
}
