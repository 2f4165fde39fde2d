package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

const driverName = "pgx"

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     int    `yaml:"port" envconfig:"DB_PORT"`
	Username string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE"`

	MaxOpenConns    int           `yaml:"maxOpenConns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"maxIdleConns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
}

func (c *DB) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Username, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.NameDB, sslMode)
}

// NewPostgresDB connects and applies every pending migration found in migrations.
func NewPostgresDB(ctx context.Context, cfg *DB, migrations fs.FS) (*sqlx.DB, error) {
	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(db.DB, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Connect(ctx context.Context, cfg *DB) (*sqlx.DB, error) {
	const (
		defaultMaxOpenConns    = 50
		defaultMaxIdleConns    = 10
		defaultConnMaxLifetime = time.Hour
		defaultConnMaxIdleTime = 5 * time.Minute
	)

	db, err := sqlx.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "sqlx.Open")
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpenConns))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdleConns))
	lifetime := cfg.ConnMaxLifetime
	if lifetime == 0 {
		lifetime = defaultConnMaxLifetime
	}
	db.SetConnMaxLifetime(lifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping")
	}
	return db, nil
}

func MigrateUp(db *sql.DB, migrations fs.FS) error {
	if err := setupGoose(migrations); err != nil {
		return err
	}
	return errors.Wrap(goose.Up(db, "."), "goose up")
}

func MigrateDown(db *sql.DB, migrations fs.FS) error {
	if err := setupGoose(migrations); err != nil {
		return err
	}
	return errors.Wrap(goose.Down(db, "."), "goose down")
}

func MigrationStatus(db *sql.DB, migrations fs.FS) error {
	if err := setupGoose(migrations); err != nil {
		return err
	}
	return errors.Wrap(goose.Status(db, "."), "goose status")
}

func setupGoose(migrations fs.FS) error {
	goose.SetBaseFS(migrations)
	return errors.Wrap(goose.SetDialect("postgres"), "goose dialect")
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
