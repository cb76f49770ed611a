package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"courtbook/config"
)

const (
	defaultMaxOpenConnection = 10
	defaultMaxIdleConnection = 10
	defaultConnMaxLifetime   = 30 * time.Minute
)

var ErrNotConnected = errors.New("postgres: no connection established")

// Connection holds the read and write pools. When both point at the same
// database they share one pool.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	host     string
	port     string
	username string
	password string
	dbName   string
	sslMode  string
	timezone string
}

func New(cfg *config.Config) (*Connection, error) {
	pg := cfg.DB.Postgres
	write := endpoint{
		name:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		dbName:   prefixed(pg.Prefix, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
		timezone: pg.Write.Timezone,
	}
	read := endpoint{
		name:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		dbName:   prefixed(pg.Prefix, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
		timezone: pg.Read.Timezone,
	}

	writeDB, err := connect(cfg, write)
	if err != nil {
		return nil, err
	}

	if read.dsn() == write.dsn() || read.host == "" {
		return &Connection{Read: writeDB, Write: writeDB}, nil
	}

	readDB, err := connect(cfg, read)
	if err != nil {
		_ = writeDB.Close()

		return nil, err
	}

	return &Connection{Read: readDB, Write: writeDB}, nil
}

// Close releases both pools.
func (c *Connection) Close() error {
	if c == nil || c.Write == nil {
		return nil
	}

	err := c.Write.Close()
	if c.Read != nil && c.Read != c.Write {
		err = errors.Join(err, c.Read.Close())
	}

	return err
}

func prefixed(prefix, name string) string {
	return prefix + name
}

func (e endpoint) dsn() string {
	query := url.Values{}
	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	if e.timezone != "" {
		query.Set("timezone", e.timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, e endpoint) (*sqlx.DB, error) {
	pg := cfg.DB.Postgres
	attempts := max(pg.MaxRetry, 1)
	wait := time.Duration(pg.RetryWaitTime) * time.Second

	var lastErr error

	for attempt := range attempts {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		db, err := sqlx.ConnectContext(ctx, "postgres", e.dsn())
		cancel()

		if err == nil {
			db.SetMaxOpenConns(orDefault(pg.MaxOpenConns, defaultMaxOpenConnection))
			db.SetMaxIdleConns(orDefault(pg.MaxIdleConns, defaultMaxIdleConnection))
			db.SetConnMaxLifetime(defaultConnMaxLifetime)

			log.Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("dbName", e.dbName).
				Msg("Connected to database")

			return db, nil
		}

		lastErr = err

		log.Warn().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Int("attempt", attempt+1).
			Int("maxAttempt", attempts).
			Msg("Failed connecting to database")

		if attempt+1 < attempts {
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("%w (%s): %w", ErrNotConnected, e.name, lastErr)
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}

	return fallback
}
