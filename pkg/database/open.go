package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Config describes how to reach the relational store.
type Config struct {
	Driver          string
	Host            string
	Port            string
	UserName        string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds the driver specific data source name.
func (c Config) DSN() (string, error) {
	switch c.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(c.Host, c.Port),
			Path:     "/" + c.Name,
			RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
		}
		if c.UserName != "" {
			u.User = url.UserPassword(c.UserName, c.Password)
		}
		return u.String(), nil
	case DriverSQLite:
		if c.SQLitePath == "" {
			return "", fmt.Errorf("sqlite path is required")
		}
		q := url.Values{}
		q.Add("_pragma", "foreign_keys(1)")
		q.Add("_pragma", "busy_timeout(5000)")
		return "file:" + c.SQLitePath + "?" + q.Encode(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Open connects to the store and applies the pool settings.
func Open(ctx context.Context, cfg Config, logger ectologger.Logger) (DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s database", cfg.Driver)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.WithContext(ctx).WithFields(map[string]any{
		"driver": cfg.Driver,
		"name":   cfg.Name,
	}).Info("connected to database")

	return NewDatabaseInstance(db, logger), nil
}
